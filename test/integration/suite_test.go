//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
)

// world is the state one scenario builds up. Paths may use {quotation} for
// the id of the last quotation the scenario created.
type world struct {
	baseURL   string
	http      *http.Client
	status    int
	header    http.Header
	body      []byte
	quotation string
}

func (w *world) clear() {
	w.status = 0
	w.header = nil
	w.body = nil
	w.quotation = ""
}

func (w *world) expand(path string) string {
	return strings.ReplaceAll(path, "{quotation}", w.quotation)
}

// scenarios registers the steps against the service at baseURL.
func scenarios(baseURL string) func(*godog.ScenarioContext) {
	return func(sc *godog.ScenarioContext) {
		w := &world{baseURL: baseURL, http: &http.Client{Timeout: 10 * time.Second}}

		sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
			w.clear()
			return ctx, nil
		})

		sc.Step(`^the service is running$`, w.serviceIsRunning)
		sc.Step(`^a quotation for "([^"]*)" with (\d+) items? exists$`, w.quotationExists)
		sc.Step(`^I request GET "([^"]*)"$`, w.get)
		sc.Step(`^I send (POST|PUT|DELETE) "([^"]*)" with body:$`, w.sendWithBody)
		sc.Step(`^I send DELETE "([^"]*)"$`, w.delete)
		sc.Step(`^the response status should be (\d+)$`, w.statusShouldBe)
		sc.Step(`^the response should contain "([^"]*)"$`, w.bodyShouldContain)
		sc.Step(`^the JSON field "([^"]*)" should be "([^"]*)"$`, w.fieldShouldBe)
		sc.Step(`^the JSON field "([^"]*)" should have (\d+) entries$`, w.fieldShouldHave)
		sc.Step(`^the response header "([^"]*)" should be set$`, w.headerShouldBeSet)
	}
}

func (w *world) serviceIsRunning() error {
	if err := w.do(http.MethodGet, "/-/live", nil); err != nil {
		return fmt.Errorf("service is not running at %s: %w", w.baseURL, err)
	}

	return w.statusShouldBe(http.StatusOK)
}

func (w *world) quotationExists(customer string, items int) error {
	rows := make([]map[string]string, items)
	for i := range rows {
		rows[i] = map[string]string{
			"sample_activity": fmt.Sprintf("Activity %d", i+1),
			"qty":             "1",
			"unit_rate":       "100",
			"total_cost":      "100.00",
		}
	}

	body, err := json.Marshal(map[string]any{
		"quotation_data": map[string]string{"customer_name": customer},
		"items_data":     rows,
	})
	if err != nil {
		return err
	}

	if err := w.do(http.MethodPost, "/quotation-with-items", body); err != nil {
		return err
	}
	if err := w.statusShouldBe(http.StatusCreated); err != nil {
		return err
	}

	var created struct {
		QuotationID int64 `json:"quotation_id"`
	}
	if err := json.Unmarshal(w.body, &created); err != nil {
		return fmt.Errorf("create response: %w", err)
	}

	w.quotation = strconv.FormatInt(created.QuotationID, 10)
	return nil
}

func (w *world) get(path string) error {
	return w.do(http.MethodGet, w.expand(path), nil)
}

func (w *world) sendWithBody(method, path string, doc *godog.DocString) error {
	return w.do(method, w.expand(path), []byte(w.expand(doc.Content)))
}

func (w *world) delete(path string) error {
	return w.do(http.MethodDelete, w.expand(path), nil)
}

func (w *world) do(method, path string, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var r io.Reader = http.NoBody
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, w.baseURL+path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := w.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	w.status, w.header = resp.StatusCode, resp.Header
	w.body, err = io.ReadAll(resp.Body)
	return err
}

func (w *world) statusShouldBe(want int) error {
	if w.status != want {
		return fmt.Errorf("status %d, want %d: %s", w.status, want, w.body)
	}

	return nil
}

func (w *world) bodyShouldContain(text string) error {
	if !bytes.Contains(w.body, []byte(w.expand(text))) {
		return fmt.Errorf("body does not contain %q: %s", text, w.body)
	}

	return nil
}

// field walks a dotted path such as "error.code" through the JSON body.
func (w *world) field(path string) (any, error) {
	var v any
	if err := json.Unmarshal(w.body, &v); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}

	for part := range strings.SplitSeq(path, ".") {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%q: %s is not an object", path, part)
		}
		v = obj[part]
	}

	return v, nil
}

func (w *world) fieldShouldBe(path, want string) error {
	v, err := w.field(path)
	if err != nil {
		return err
	}

	if got := fmt.Sprint(v); got != w.expand(want) {
		return fmt.Errorf("field %q is %q, want %q", path, got, want)
	}

	return nil
}

func (w *world) fieldShouldHave(path string, n int) error {
	v, err := w.field(path)
	if err != nil {
		return err
	}

	list, ok := v.([]any)
	if !ok {
		return fmt.Errorf("field %q is not a list", path)
	}
	if len(list) != n {
		return fmt.Errorf("field %q has %d entries, want %d", path, len(list), n)
	}

	return nil
}

func (w *world) headerShouldBeSet(name string) error {
	if w.header.Get(name) == "" {
		return errors.New("response header " + name + " is missing")
	}

	return nil
}

// TestFeatures runs the feature files against BASE_URL, or against a
// service started on a temporary database when BASE_URL is unset.
func TestFeatures(t *testing.T) {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = newStack(t).server.URL
	}

	suite := godog.TestSuite{
		ScenarioInitializer: scenarios(baseURL),
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("feature scenarios failed")
	}
}
