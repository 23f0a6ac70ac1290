// cmd/tools/registry-checker/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"pathmatch-workers/pkg/registry"

	lu "pathmatch-workers/internal/workers/auth/login-user"
	lo "pathmatch-workers/internal/workers/auth/logout-user"
	rs "pathmatch-workers/internal/workers/auth/refresh-session"
	ru "pathmatch-workers/internal/workers/auth/register-user"
	smn "pathmatch-workers/internal/workers/communication/send-match-notification"
	ims "pathmatch-workers/internal/workers/data-access/index-mentor-search"
	qp "pathmatch-workers/internal/workers/data-access/query-postgresql"
	sm "pathmatch-workers/internal/workers/data-access/search-mentors"
	cmr "pathmatch-workers/internal/workers/match/create-match-record"
	ums "pathmatch-workers/internal/workers/match/update-match-status"
	cc "pathmatch-workers/internal/workers/matching/calculate-compatibility"
	epk "pathmatch-workers/internal/workers/matching/extract-profile-keywords"
	ftm "pathmatch-workers/internal/workers/matching/find-top-matches"
	sme "pathmatch-workers/internal/workers/profile/save-mentee-profile"
	smp "pathmatch-workers/internal/workers/profile/save-mentor-profile"
	ua "pathmatch-workers/internal/workers/profile/update-availability"
)

// implementedTaskTypes is every task type compiled into the worker manager.
// The registry file and this list must agree exactly; a mismatch means either
// a worker shipped without a registry entry or a registry entry points at a
// task type nothing handles.
var implementedTaskTypes = []string{
	epk.TaskType,
	cc.TaskType,
	ftm.TaskType,
	smp.TaskType,
	sme.TaskType,
	ua.TaskType,
	cmr.TaskType,
	ums.TaskType,
	ru.TaskType,
	lu.TaskType,
	rs.TaskType,
	lo.TaskType,
	smn.TaskType,
	qp.TaskType,
	ims.TaskType,
	sm.TaskType,
}

var validStatuses = map[string]bool{
	"planned":     true,
	"in-progress": true,
	"completed":   true,
	"verified":    true,
}

func main() {
	path := flag.String("path", "configs/activity-registry.json", "Path to registry file")
	flag.Parse()

	if err := checkRegistry(*path); err != nil {
		fmt.Printf("Registry check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Registry check passed.")
}

func checkRegistry(path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	registered := make(map[string]bool)

	for _, activity := range reg.Activities {
		if activity.ID == "" {
			return fmt.Errorf("activity missing required field: ID")
		}
		if ids[activity.ID] {
			return fmt.Errorf("duplicate activity ID: %s", activity.ID)
		}
		ids[activity.ID] = true

		if activity.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: DisplayName", activity.ID)
		}
		if activity.TaskType == "" {
			return fmt.Errorf("activity %s missing required field: TaskType", activity.ID)
		}
		if activity.Category == "" {
			return fmt.Errorf("activity %s missing required field: Category", activity.ID)
		}
		if registered[activity.TaskType] {
			return fmt.Errorf("duplicate task type: %s", activity.TaskType)
		}
		registered[activity.TaskType] = true

		if !validStatuses[activity.ImplementationStatus] {
			return fmt.Errorf("activity %s has unknown implementation status: %q",
				activity.ID, activity.ImplementationStatus)
		}
		if activity.Timeout != "" {
			if _, err := time.ParseDuration(activity.Timeout); err != nil {
				return fmt.Errorf("activity %s has unparseable timeout %q: %w",
					activity.ID, activity.Timeout, err)
			}
		}
		if activity.Retries < 0 {
			return fmt.Errorf("activity %s has negative retries", activity.ID)
		}

		if err := compileSchema(activity.InputSchema); err != nil {
			return fmt.Errorf("activity %s input schema does not compile: %w", activity.ID, err)
		}
		if err := compileSchema(activity.OutputSchema); err != nil {
			return fmt.Errorf("activity %s output schema does not compile: %w", activity.ID, err)
		}
	}

	// Cross-check both directions against the compiled-in worker list.
	for _, taskType := range implementedTaskTypes {
		if !registered[taskType] {
			return fmt.Errorf("implemented worker %s has no registry entry", taskType)
		}
	}
	known := make(map[string]bool, len(implementedTaskTypes))
	for _, taskType := range implementedTaskTypes {
		known[taskType] = true
	}
	for taskType := range registered {
		if !known[taskType] {
			return fmt.Errorf("registry entry %s has no implemented worker", taskType)
		}
	}

	fmt.Printf("Found %d activities covering all %d implemented workers.\n",
		len(reg.Activities), len(implementedTaskTypes))
	return nil
}

// compileSchema confirms a registry schema is itself valid JSON Schema, so a
// broken schema fails this check instead of every job that hits validation.
func compileSchema(schema map[string]interface{}) error {
	if len(schema) == 0 {
		return nil
	}
	_, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	return err
}
