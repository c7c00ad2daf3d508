package graphql

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/lshigami/canvassing/internal/model"
	"github.com/lshigami/canvassing/internal/pubsub"
	"github.com/lshigami/canvassing/internal/repository"
	"github.com/lshigami/canvassing/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type schemaFixture struct {
	db     *gorm.DB
	schema graphql.Schema
	broker *pubsub.Broker

	org           model.Organization
	partner       model.User
	questionnaire model.Questionnaire
	question      model.Question
	list          model.AddressList
	address       model.Address
}

func newSchemaFixture(t *testing.T) *schemaFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Organization{},
		&model.Questionnaire{},
		&model.Question{},
		&model.AddressList{},
		&model.Address{},
		&model.Answer{},
	))

	f := &schemaFixture{db: db, broker: pubsub.NewBroker()}

	f.org = model.Organization{Name: "Org1"}
	require.NoError(t, db.Create(&f.org).Error)
	f.partner = model.User{Username: "demo", Password: "secret", Role: model.RolePartner}
	require.NoError(t, db.Create(&f.partner).Error)
	require.NoError(t, db.Model(&f.org).Association("Users").Append(&f.partner))

	f.questionnaire = model.Questionnaire{Title: "Door Knock 2026", OrganizationID: f.org.ID}
	require.NoError(t, db.Create(&f.questionnaire).Error)
	f.question = model.Question{Text: "Favorite color?", QuestionnaireID: f.questionnaire.ID}
	require.NoError(t, db.Create(&f.question).Error)

	f.list = model.AddressList{Title: "List1", OrganizationID: f.org.ID}
	require.NoError(t, db.Create(&f.list).Error)
	f.address = model.Address{Address1: "123 Main St", City: "Springfield", State: "IL", Zipcode: "62701"}
	require.NoError(t, db.Create(&f.address).Error)
	require.NoError(t, db.Model(&f.list).Association("Addresses").Append(&f.address))

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	questionnaireRepo := repository.NewQuestionnaireRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	listRepo := repository.NewAddressListRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	answerRepo := repository.NewAnswerRepository(db)

	submissionService := service.NewSubmissionService(
		userRepo, questionRepo, questionnaireRepo, listRepo, addressRepo, answerRepo, f.broker)

	resolver := NewResolver(
		userRepo, orgRepo, questionnaireRepo, questionRepo, listRepo, addressRepo,
		submissionService, f.broker)
	schema, err := NewSchema(resolver)
	require.NoError(t, err)
	f.schema = schema
	return f
}

func (f *schemaFixture) do(ctx context.Context, query string, vars map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         f.schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
}

func TestQueryQuestionnaire(t *testing.T) {
	f := newSchemaFixture(t)

	result := f.do(context.Background(), `
		query ($id: Int!) {
			questionnaire(id: $id) {
				id
				title
				questions { text }
				organization { name }
			}
		}`, map[string]interface{}{"id": int(f.questionnaire.ID)})
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	q := data["questionnaire"].(map[string]interface{})
	assert.Equal(t, "Door Knock 2026", q["title"])
	org := q["organization"].(map[string]interface{})
	assert.Equal(t, "Org1", org["name"])
	questions := q["questions"].([]interface{})
	require.Len(t, questions, 1)
	assert.Equal(t, "Favorite color?", questions[0].(map[string]interface{})["text"])
}

func TestQueryOrganizationRequiresAPIKey(t *testing.T) {
	f := newSchemaFixture(t)
	query := `{ organization { name questionnaires { title } } }`

	t.Run("without key context", func(t *testing.T) {
		result := f.do(context.Background(), query, nil)
		require.NotEmpty(t, result.Errors)
		assert.Contains(t, result.Errors[0].Message, "missing organization API key")
	})

	t.Run("with key context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), CtxOrganizationID, f.org.ID)
		result := f.do(ctx, query, nil)
		require.Empty(t, result.Errors)
		org := result.Data.(map[string]interface{})["organization"].(map[string]interface{})
		assert.Equal(t, "Org1", org["name"])
		questionnaires := org["questionnaires"].([]interface{})
		require.Len(t, questionnaires, 1)
		assert.Equal(t, "Door Knock 2026", questionnaires[0].(map[string]interface{})["title"])
	})
}

func TestMutationSubmitAnswer(t *testing.T) {
	f := newSchemaFixture(t)

	mutation := `
		mutation ($dto: SubmitAnswerInput!) {
			submitAnswer(submitAnswerDto: $dto)
		}`
	vars := func(questionID uint) map[string]interface{} {
		return map[string]interface{}{
			"dto": map[string]interface{}{
				"questionnaireId": int(f.questionnaire.ID),
				"addressListId":   int(f.list.ID),
				"addressId":       int(f.address.ID),
				"questionId":      int(questionID),
				"answerText":      "Blue",
			},
		}
	}

	t.Run("unauthenticated", func(t *testing.T) {
		result := f.do(context.Background(), mutation, vars(f.question.ID))
		require.NotEmpty(t, result.Errors)
		assert.Contains(t, result.Errors[0].Message, "authentication required")
	})

	t.Run("authenticated", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), CtxUserID, f.partner.ID)
		result := f.do(ctx, mutation, vars(f.question.ID))
		require.Empty(t, result.Errors)
		assert.Equal(t, "Ok", result.Data.(map[string]interface{})["submitAnswer"])

		var count int64
		require.NoError(t, f.db.Model(&model.Answer{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("validation failure surfaces as resolver error", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), CtxUserID, f.partner.ID)
		result := f.do(ctx, mutation, vars(9999))
		require.NotEmpty(t, result.Errors)
		assert.Contains(t, result.Errors[0].Message, "Question 9999 is not valid")
	})
}

func TestSubscriptionNewAnswer(t *testing.T) {
	f := newSchemaFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := graphql.Subscribe(graphql.Params{
		Schema:        f.schema,
		RequestString: `subscription { newAnswer { text question { text } } }`,
		Context:       ctx,
	})

	// Give the subscriber a moment to register before publishing.
	require.Eventually(t, func() bool {
		return f.broker.Subscribers(service.TopicNewAnswer) == 1
	}, time.Second, 10*time.Millisecond)

	f.broker.Publish(service.TopicNewAnswer, &model.Answer{
		Text:     "Blue",
		Question: f.question,
	})

	select {
	case result := <-results:
		require.Empty(t, result.Errors)
		data := result.Data.(map[string]interface{})
		answer := data["newAnswer"].(map[string]interface{})
		assert.Equal(t, "Blue", answer["text"])
		assert.Equal(t, "Favorite color?", answer["question"].(map[string]interface{})["text"])
	case <-time.After(2 * time.Second):
		t.Fatal("no subscription event delivered")
	}
}
