// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/api/config"
	"github.com/controle-financeiro/api/internal/domain/entity"
	"github.com/controle-financeiro/api/internal/infra/dependency"
	"github.com/controle-financeiro/api/internal/integration/entrypoint/validation"
	"github.com/controle-financeiro/api/internal/integration/persistence/model"
	"github.com/controle-financeiro/api/test/integration/mock"
)

var serverInit sync.Once
var serverErr error
var serverURI string

type response struct {
	status  int
	headers http.Header
	body    any
	raw     string
}

type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response
	db       *mock.Db
	redis    *mock.Redis

	limitedServer *httptest.Server
	limitedClose  func() error

	categoryIDs       map[string]int64
	currentCategoryID int64
	transactionID     int64
}

// InitializeTestSuite prepares global state shared by every scenario.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
		db:     mock.NewDb("controle_financeiro", &model.CategoryModel{}, &model.TransactionModel{}),
		redis:  mock.NewRedis(),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		test.after()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the API rate limit is (\d+) requests per minute$`, test.theAPIRateLimitIs)

	// Data setup steps
	ctx.Given(`^a category exists with name "([^"]*)" and type "([^"]*)"$`, test.aCategoryExistsWithNameAndType)
	ctx.Given(`^a transaction exists with description "([^"]*)", amount "([^"]*)", type "([^"]*)" and date "([^"]*)"$`, test.aTransactionExists)
	ctx.Given(`^a transaction exists with description "([^"]*)", amount "([^"]*)", type "([^"]*)", date "([^"]*)" and category "([^"]*)"$`, test.aTransactionExistsInCategory)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I send (\d+) "([^"]*)" requests to "([^"]*)"$`, test.iSendRequestsTo)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should be null$`, test.theResponseFieldShouldBeNull)
	ctx.Then(`^the response should be a list with (\d+) items$`, test.theResponseShouldBeAListWith)
	ctx.Then(`^the response errors should contain "([^"]*)"$`, test.theResponseErrorsShouldContain)
	ctx.Then(`^the raw response should contain:$`, test.theRawResponseShouldContain)
	ctx.Then(`^the response header "([^"]*)" should exist$`, test.theResponseHeaderShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.categoryIDs = make(map[string]int64)
	t.currentCategoryID = 0
	t.transactionID = 0

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	if err := t.redis.ClearRedis(); err != nil {
		return err
	}

	uri, err := startServer(t.db)
	if err != nil {
		return err
	}
	t.uri = uri
	return nil
}

func (t *testContext) after() {
	if t.limitedServer != nil {
		t.limitedServer.Close()
		_ = t.limitedClose()
		t.limitedServer = nil
		t.limitedClose = nil
	}
}

// startServer boots the shared API server on a free port and waits for it.
func startServer(db *mock.Db) (string, error) {
	serverInit.Do(func() {
		if err := validation.Setup(); err != nil {
			serverErr = err
			return
		}

		cfg, err := config.Load(config.NewViper(), "")
		if err != nil {
			serverErr = err
			return
		}
		cfg.Server.Environment = config.EnvTest
		cfg.Redis.URL = ""

		injector, err := dependency.NewInjector(cfg, db.DbConn, nil)
		if err != nil {
			serverErr = err
			return
		}

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			serverErr = err
			return
		}

		server := &http.Server{
			Handler:           injector.Router.Setup(cfg.Server.Environment),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			_ = server.Serve(listener)
		}()

		serverURI = "http://" + listener.Addr().String()
		serverErr = waitForHealth(serverURI)
	})
	return serverURI, serverErr
}

func waitForHealth(uri string) error {
	client := &http.Client{Timeout: time.Second}
	for i := 0; i < 50; i++ {
		resp, err := client.Get(uri + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return errors.New("api server did not become healthy")
}

func (t *testContext) theAPIServerIsRunning() error {
	if t.uri == "" {
		return errors.New("api server is not running")
	}
	return nil
}

// theAPIRateLimitIs points the scenario at a second server that limits
// requests through the Redis mock.
func (t *testContext) theAPIRateLimitIs(maxRequests int) error {
	cfg, err := config.Load(config.NewViper(), "")
	if err != nil {
		return err
	}
	cfg.Server.Environment = config.EnvDevelopment
	cfg.Redis.URL = t.redis.URL()
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.MaxRequests = maxRequests
	cfg.RateLimit.Window = time.Minute

	injector, err := dependency.NewInjector(cfg, t.db.DbConn, nil)
	if err != nil {
		return err
	}

	t.limitedServer = httptest.NewServer(injector.Router.Setup(config.EnvTest))
	t.limitedClose = injector.Close
	t.uri = t.limitedServer.URL
	return nil
}

func (t *testContext) aCategoryExistsWithNameAndType(name, categoryType string) error {
	category := &model.CategoryModel{
		Name: name,
		Kind: categoryType,
	}

	if err := t.db.DbConn.Create(category).Error; err != nil {
		return err
	}

	t.categoryIDs[name] = category.ID
	t.currentCategoryID = category.ID
	return nil
}

func (t *testContext) aTransactionExists(description, amount, transactionType, date string) error {
	return t.createTransaction(description, amount, transactionType, date, nil)
}

func (t *testContext) aTransactionExistsInCategory(description, amount, transactionType, date, category string) error {
	categoryID, ok := t.categoryIDs[category]
	if !ok {
		return fmt.Errorf("category '%s' was not created in this scenario", category)
	}
	return t.createTransaction(description, amount, transactionType, date, &categoryID)
}

func (t *testContext) createTransaction(description, amount, transactionType, date string, categoryID *int64) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount '%s': %w", amount, err)
	}
	day, err := time.Parse(entity.DateLayout, date)
	if err != nil {
		return fmt.Errorf("invalid date '%s': %w", date, err)
	}

	now := time.Now().UTC()
	transaction := &model.TransactionModel{
		Description: description,
		Amount:      value,
		Kind:        transactionType,
		Date:        day,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := t.db.DbConn.Create(transaction).Error; err != nil {
		return err
	}

	t.transactionID = transaction.ID
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iSendRequestsTo(count int, method, path string) error {
	for i := 0; i < count; i++ {
		if err := t.iSendARequestTo(method, path); err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) replacePlaceholders(content string) string {
	today := entity.Today()

	content = strings.ReplaceAll(content, "{{category_id}}", strconv.FormatInt(t.currentCategoryID, 10))
	content = strings.ReplaceAll(content, "{{transaction_id}}", strconv.FormatInt(t.transactionID, 10))
	content = strings.ReplaceAll(content, "{{today}}", today.Format(entity.DateLayout))
	content = strings.ReplaceAll(content, "{{tomorrow}}", today.AddDate(0, 0, 1).Format(entity.DateLayout))

	for name, id := range t.categoryIDs {
		content = strings.ReplaceAll(content, "{{category_id:"+name+"}}", strconv.FormatInt(id, 10))
	}

	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
		raw:     string(bodyBytes),
		body:    string(bodyBytes),
	}

	// Numbers are kept as json.Number so monetary scale survives.
	decoder := json.NewDecoder(bytes.NewReader(bodyBytes))
	decoder.UseNumber()
	var decoded any
	if err := decoder.Decode(&decoded); err != nil {
		return nil
	}
	t.response.body = decoded

	// Capture created ids for later placeholders
	if method == http.MethodPost && resp.StatusCode == http.StatusCreated {
		if object, ok := decoded.(map[string]any); ok {
			t.captureID(object)
		}
	}

	return nil
}

func (t *testContext) captureID(object map[string]any) {
	number, ok := object["id"].(json.Number)
	if !ok {
		return
	}
	id, err := number.Int64()
	if err != nil {
		return
	}

	if _, isTransaction := object["valor"]; isTransaction {
		t.transactionID = id
		return
	}

	t.currentCategoryID = id
	if name, ok := object["nome"].(string); ok {
		t.categoryIDs[name] = id
	}
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, t.response.status, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(string); ok {
		return fmt.Errorf("response is not JSON: %s", t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %s", t.response.raw)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %s", field, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value, found := getFieldValue(t.response.body, field)
	if !found {
		return fmt.Errorf("field '%s' not found in response: %s", field, t.response.raw)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if value, found := getFieldValue(t.response.body, field); !found || value == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBeNull(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value, found := getFieldValue(t.response.body, field)
	if !found {
		return fmt.Errorf("field '%s' not found in response: %s", field, t.response.raw)
	}
	if value != nil {
		return fmt.Errorf("field '%s' expected null, got '%v'", field, value)
	}
	return nil
}

func (t *testContext) theResponseShouldBeAListWith(quantity int) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	items, ok := t.response.body.([]any)
	if !ok {
		return fmt.Errorf("response is not a JSON array: %s", t.response.raw)
	}
	if len(items) != quantity {
		return fmt.Errorf("expected %d items, got %d: %s", quantity, len(items), t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseErrorsShouldContain(message string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value, found := getFieldValue(t.response.body, "errors")
	if !found {
		return fmt.Errorf("response has no errors list: %s", t.response.raw)
	}
	list, ok := value.([]any)
	if !ok {
		return fmt.Errorf("errors is not a list: %v", value)
	}
	for _, item := range list {
		if fmt.Sprintf("%v", item) == message {
			return nil
		}
	}
	return fmt.Errorf("errors %v do not contain '%s'", list, message)
}

func (t *testContext) theRawResponseShouldContain(content *godog.DocString) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	expected := strings.TrimSpace(t.replacePlaceholders(content.Content))
	if !strings.Contains(t.response.raw, expected) {
		return fmt.Errorf("response does not contain '%s': %s", expected, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldExist(header string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.headers.Get(header) == "" {
		return fmt.Errorf("response header '%s' is missing", header)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	record, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	var count int64
	if err := t.db.DbConn.Model(record).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	record, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	recordType := reflect.TypeOf(record).Elem()
	recordSlicePtr := reflect.New(reflect.SliceOf(recordType))

	query := t.db.DbConn
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	if err := query.Find(recordSlicePtr.Interface()).Error; err != nil {
		return err
	}

	count := recordSlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

// getFieldValue walks a dot separated path through decoded JSON.
// Numeric segments index into arrays.
func getFieldValue(object any, dotSeparatedField string) (any, bool) {
	field := object

	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		switch v := field.(type) {
		case []any:
			i, err := strconv.Atoi(currentField)
			if err != nil || i < 0 || i >= len(v) {
				return nil, false
			}
			field = v[i]
		case map[string]any:
			value, ok := v[currentField]
			if !ok {
				return nil, false
			}
			field = value
		default:
			return nil, false
		}
	}

	return field, true
}
