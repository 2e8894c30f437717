// Package steps provides step definitions for the BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/offer-tracker/backend/internal/application/usecase/offer"
	"github.com/offer-tracker/backend/internal/application/usecase/person"
	"github.com/offer-tracker/backend/internal/application/usecase/progress"
	"github.com/offer-tracker/backend/internal/application/usecase/recommendation"
	"github.com/offer-tracker/backend/internal/application/usecase/transaction"
	"github.com/offer-tracker/backend/internal/infra/server/router"
	"github.com/offer-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/offer-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/offer-tracker/backend/internal/integration/persistence"
	"github.com/offer-tracker/backend/internal/integration/persistence/model"
	"github.com/offer-tracker/backend/test/integration/mock"
)

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			Tags:     tags,
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	server   *httptest.Server
	redis    *miniredis.Miniredis
	client   *http.Client
	db       *mock.Db
	response *response
	stored   map[string]string
}

type response struct {
	status int
	body   []byte
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
		db: mock.NewDb(map[string]any{
			"people":       &model.PersonModel{},
			"offers":       &model.OfferModel{},
			"transactions": &model.TransactionModel{},
		}),
	}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		if err := test.db.ClearDB(); err != nil {
			return c, err
		}
		test.stored = make(map[string]string)
		test.response = nil

		mr, err := miniredis.Run()
		if err != nil {
			return c, err
		}
		test.redis = mr
		test.server = httptest.NewServer(buildEngine(test.db, mr))
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if test.server != nil {
			test.server.Close()
		}
		if test.redis != nil {
			test.redis.Close()
		}
		return c, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.Step(`^I store the response field "([^"]*)" as "([^"]*)"$`, test.iStoreTheResponseFieldAs)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response should not contain "([^"]*)"$`, test.theResponseShouldNotContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
}

// buildEngine wires the full application stack over the shared test database
// and a throwaway redis instance for the rate limiter.
func buildEngine(db *mock.Db, mr *miniredis.Miniredis) *gin.Engine {
	personRepo := persistence.NewPersonRepository(db.DbConn)
	offerRepo := persistence.NewOfferRepository(db.DbConn)
	transactionRepo := persistence.NewTransactionRepository(db.DbConn)

	personController := controller.NewPersonController(
		person.NewListPeopleUseCase(personRepo),
		person.NewCreatePersonUseCase(personRepo),
		person.NewUpdatePersonUseCase(personRepo),
		person.NewDeletePersonUseCase(personRepo),
	)
	offerController := controller.NewOfferController(
		offer.NewListOffersUseCase(offerRepo),
		offer.NewCreateOfferUseCase(offerRepo),
		offer.NewGetOfferUseCase(offerRepo),
		offer.NewUpdateOfferUseCase(offerRepo),
		offer.NewDeleteOfferUseCase(offerRepo),
		offer.NewCopyOfferUseCase(offerRepo, personRepo),
		progress.NewGetOfferProgressUseCase(offerRepo, transactionRepo),
	)
	transactionController := controller.NewTransactionController(
		transaction.NewListTransactionsUseCase(transactionRepo),
		transaction.NewCreateTransactionUseCase(transactionRepo),
		transaction.NewUpdateTransactionUseCase(transactionRepo),
		transaction.NewDeleteTransactionUseCase(transactionRepo),
		transaction.NewListMerchantsUseCase(transactionRepo),
		transaction.NewGetMerchantCategoriesUseCase(transactionRepo),
		progress.NewGetMatchingOffersUseCase(offerRepo, transactionRepo),
	)
	dashboardController := controller.NewDashboardController(
		progress.NewGetDashboardUseCase(offerRepo, transactionRepo),
	)
	recommendationController := controller.NewRecommendationController(
		recommendation.NewGetRecommendationsUseCase(offerRepo, transactionRepo, 0),
	)

	limiter := middleware.NewRateLimiter(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 1000)

	healthController := controller.NewHealthController(func() bool { return true })

	r := router.NewRouter(
		healthController,
		personController,
		offerController,
		transactionController,
		dashboardController,
		recommendationController,
		limiter,
	)
	return r.Setup("test")
}

func (t *testContext) theAPIServerIsRunning() error {
	if t.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.send(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	return t.send(method, path, []byte(t.substitute(body.Content)))
}

func (t *testContext) send(method, path string, body []byte) error {
	path = t.substitute(path)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, t.server.URL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	t.response = &response{status: resp.StatusCode, body: data}
	return nil
}

// substitute replaces {name} placeholders with values stored from earlier
// responses, so scenarios can chain generated IDs.
func (t *testContext) substitute(s string) string {
	for name, value := range t.stored {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}
	return s
}

func (t *testContext) iStoreTheResponseFieldAs(field, name string) error {
	value, err := t.lookupField(field)
	if err != nil {
		return err
	}
	t.stored[name] = fmt.Sprint(value)
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expected int) error {
	if t.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if t.response.status != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	var v any
	if err := json.Unmarshal(t.response.body, &v); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	expected = t.substitute(expected)
	if !strings.Contains(string(t.response.body), expected) {
		return fmt.Errorf("response does not contain %q: %s", expected, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldNotContain(unexpected string) error {
	unexpected = t.substitute(unexpected)
	if strings.Contains(string(t.response.body), unexpected) {
		return fmt.Errorf("response should not contain %q: %s", unexpected, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expected string) error {
	value, err := t.lookupField(field)
	if err != nil {
		return err
	}
	expected = t.substitute(expected)
	if fmt.Sprint(value) != expected {
		return fmt.Errorf("field %q = %v, expected %q", field, value, expected)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if _, err := t.lookupField(field); err != nil {
		return err
	}
	return nil
}

// lookupField resolves a dot-separated path into the JSON response body.
// Numeric segments index into arrays.
func (t *testContext) lookupField(field string) (any, error) {
	if t.response == nil {
		return nil, fmt.Errorf("no response recorded")
	}

	var current any
	if err := json.Unmarshal(t.response.body, &current); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	for _, segment := range strings.Split(field, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field %q not found in response: %s", field, t.response.body)
			}
			current = value
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("invalid array index %q in field %q", segment, field)
			}
			current = node[idx]
		default:
			return nil, fmt.Errorf("cannot descend into field %q at %q", field, segment)
		}
	}
	return current, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(expected int, table string) error {
	count, err := t.db.Count(table)
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
	return nil
}
