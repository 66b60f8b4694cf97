// Command shadow_compare replays read-only requests against the legacy
// Flask service and the Go API side by side and reports differences.
// Used during the cutover to prove response parity before switching
// traffic.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetsFile struct {
	Targets []target `json:"targets"`
}

type result struct {
	Target       target
	LegacyStatus int
	GoStatus     int
	StatusMatch  bool
	BodyMatch    bool
	Err          error
}

// Fields that legitimately differ between the two stacks.
var volatileFields = map[string]struct{}{
	"request_id": {},
	"timestamp":  {},
	"token":      {},
}

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		bearer      string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:5000", "Legacy Flask base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "Path to JSON targets file")
	flag.StringVar(&bearer, "token", "", "Bearer token for authenticated endpoints")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}

	var breaking, optional int
	for _, tgt := range targets {
		res := compare(client, goBase, legacyBase, bearer, tgt)
		printResult(res)

		mismatch := res.Err != nil || !res.StatusMatch || !res.BodyMatch
		if mismatch {
			if tgt.Critical {
				breaking++
			} else {
				optional++
			}
		}
	}

	fmt.Printf("breaking diffs: %d, optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file targetsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}

	return file.Targets, nil
}

func compare(client *http.Client, goBase, legacyBase, bearer string, tgt target) result {
	res := result{Target: tgt}

	goStatus, goBody, err := fetch(client, goBase, bearer, tgt)
	if err != nil {
		res.Err = fmt.Errorf("go request failed: %w", err)
		return res
	}
	legacyStatus, legacyBody, err := fetch(client, legacyBase, bearer, tgt)
	if err != nil {
		res.Err = fmt.Errorf("legacy request failed: %w", err)
		return res
	}

	res.GoStatus = goStatus
	res.LegacyStatus = legacyStatus
	res.StatusMatch = goStatus == legacyStatus
	res.BodyMatch = bodiesEqual(goBody, legacyBody)

	return res
}

func fetch(client *http.Client, base, bearer string, tgt target) (int, []byte, error) {
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, err
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, body, nil
}

func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}

	stripVolatile(&aj)
	stripVolatile(&bj)

	return reflect.DeepEqual(aj, bj)
}

func stripVolatile(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for key, inner := range val {
			if _, drop := volatileFields[key]; drop {
				delete(val, key)
				continue
			}
			stripVolatile(&inner)
			val[key] = inner
		}
	case []interface{}:
		for i, inner := range val {
			stripVolatile(&inner)
			val[i] = inner
		}
	}
}

func printResult(res result) {
	status := "OK"
	switch {
	case res.Err != nil:
		status = "ERROR " + res.Err.Error()
	case !res.StatusMatch:
		status = fmt.Sprintf("STATUS %d != %d", res.GoStatus, res.LegacyStatus)
	case !res.BodyMatch:
		status = "BODY MISMATCH"
	}

	fmt.Printf("%-6s %-45s %s\n", res.Target.Method, res.Target.Path, status)
}
