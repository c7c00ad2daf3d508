package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lshigami/canvassing/internal/dto"
	"github.com/lshigami/canvassing/internal/model"
	"github.com/lshigami/canvassing/internal/pubsub"
	"github.com/lshigami/canvassing/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// sqlite rejects concurrent writers; one connection keeps the batch
	// goroutines honest without busy errors.
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
	return db
}

// submissionFixture seeds the entity graph the validation chain walks:
// two organizations, a partner user in the first one, a questionnaire with
// questions, and an address list containing one address.
type submissionFixture struct {
	db     *gorm.DB
	svc    SubmissionService
	broker *pubsub.Broker

	partner  model.User
	admin    model.User
	stranger model.User

	org      model.Organization
	otherOrg model.Organization

	questionnaire model.Questionnaire
	question      model.Question
	question2     model.Question
	otherQuestion model.Question

	list      model.AddressList
	otherList model.AddressList

	address        model.Address
	outsideAddress model.Address
}

func newSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()
	db := newTestDB(t)
	f := &submissionFixture{db: db, broker: pubsub.NewBroker()}

	f.org = model.Organization{Name: "Org1"}
	require.NoError(t, db.Create(&f.org).Error)
	f.otherOrg = model.Organization{Name: "Org2"}
	require.NoError(t, db.Create(&f.otherOrg).Error)

	f.partner = model.User{Username: "demo", Password: "secret", Role: model.RolePartner}
	require.NoError(t, db.Create(&f.partner).Error)
	require.NoError(t, db.Model(&f.org).Association("Users").Append(&f.partner))

	f.admin = model.User{Username: "root", Password: "secret", Role: model.RoleAdmin}
	require.NoError(t, db.Create(&f.admin).Error)
	require.NoError(t, db.Model(&f.org).Association("Users").Append(&f.admin))

	f.stranger = model.User{Username: "stranger", Password: "secret", Role: model.RolePartner}
	require.NoError(t, db.Create(&f.stranger).Error)

	f.questionnaire = model.Questionnaire{Title: "Door Knock 2026", OrganizationID: f.org.ID}
	require.NoError(t, db.Create(&f.questionnaire).Error)
	f.question = model.Question{Text: "Favorite color?", QuestionnaireID: f.questionnaire.ID}
	require.NoError(t, db.Create(&f.question).Error)
	f.question2 = model.Question{Text: "Any pets?", QuestionnaireID: f.questionnaire.ID}
	require.NoError(t, db.Create(&f.question2).Error)

	otherQuestionnaire := model.Questionnaire{Title: "Competitor Survey", OrganizationID: f.otherOrg.ID}
	require.NoError(t, db.Create(&otherQuestionnaire).Error)
	f.otherQuestion = model.Question{Text: "Which brand?", QuestionnaireID: otherQuestionnaire.ID}
	require.NoError(t, db.Create(&f.otherQuestion).Error)

	f.list = model.AddressList{Title: "List1", OrganizationID: f.org.ID}
	require.NoError(t, db.Create(&f.list).Error)
	f.otherList = model.AddressList{Title: "List2", OrganizationID: f.otherOrg.ID}
	require.NoError(t, db.Create(&f.otherList).Error)

	f.address = model.Address{Address1: "123 Main St", City: "Springfield", State: "IL", Zipcode: "62701"}
	require.NoError(t, db.Create(&f.address).Error)
	require.NoError(t, db.Model(&f.list).Association("Addresses").Append(&f.address))

	f.outsideAddress = model.Address{Address1: "456 Elm St", City: "Springfield", State: "IL", Zipcode: "62702"}
	require.NoError(t, db.Create(&f.outsideAddress).Error)

	f.svc = NewSubmissionService(
		repository.NewUserRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewQuestionnaireRepository(db),
		repository.NewAddressListRepository(db),
		repository.NewAddressRepository(db),
		repository.NewAnswerRepository(db),
		f.broker,
	)
	return f
}

func (f *submissionFixture) submitDTO() dto.SubmitAnswerDTO {
	return dto.SubmitAnswerDTO{
		QuestionnaireID: f.questionnaire.ID,
		AddressListID:   f.list.ID,
		AddressID:       f.address.ID,
		QuestionID:      f.question.ID,
		AnswerText:      "Blue",
	}
}

func TestSubmitAnswerStoresSnapshot(t *testing.T) {
	f := newSubmissionFixture(t)

	answer, err := f.svc.SubmitAnswer(f.partner.ID, f.submitDTO())
	require.NoError(t, err)
	require.NotZero(t, answer.ID)
	assert.Equal(t, "Blue", answer.Text)
	require.NotNil(t, answer.UserID)
	assert.Equal(t, f.partner.ID, *answer.UserID)

	var stored model.Answer
	require.NoError(t, f.db.First(&stored, answer.ID).Error)

	var snapshot struct {
		Question struct {
			ID   uint   `json:"id"`
			Text string `json:"text"`
		} `json:"question"`
		Questionnaire struct {
			ID    uint   `json:"id"`
			Title string `json:"title"`
		} `json:"questionnaire"`
		Address struct {
			ID       uint   `json:"id"`
			Address1 string `json:"address1"`
			Zipcode  string `json:"zipcode"`
		} `json:"address"`
		AddressList struct {
			ID    uint   `json:"id"`
			Title string `json:"title"`
		} `json:"addressList"`
		User struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
		Organization struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
		} `json:"organization"`
	}
	require.NoError(t, json.Unmarshal([]byte(stored.InlineReferenceData), &snapshot))

	assert.Equal(t, f.question.ID, snapshot.Question.ID)
	assert.Equal(t, "Favorite color?", snapshot.Question.Text)
	assert.Equal(t, "Door Knock 2026", snapshot.Questionnaire.Title)
	assert.Equal(t, "123 Main St", snapshot.Address.Address1)
	assert.Equal(t, "62701", snapshot.Address.Zipcode)
	assert.Equal(t, "List1", snapshot.AddressList.Title)
	assert.Equal(t, "demo", snapshot.User.Username)
	assert.Equal(t, "Org1", snapshot.Organization.Name)

	// Key order is part of the stored format.
	raw := stored.InlineReferenceData
	positions := []int{
		strings.Index(raw, `"question":`),
		strings.Index(raw, `"questionnaire":`),
		strings.Index(raw, `"address":`),
		strings.Index(raw, `"addressList":`),
		strings.Index(raw, `"user":`),
		strings.Index(raw, `"organization":`),
	}
	for i, pos := range positions {
		require.GreaterOrEqual(t, pos, 0, "snapshot key %d missing", i)
		if i > 0 {
			assert.Greater(t, pos, positions[i-1], "snapshot keys out of order")
		}
	}
}

func TestSubmitAnswerPublishesToSubscribers(t *testing.T) {
	f := newSubmissionFixture(t)

	events, cancel := f.broker.Subscribe(TopicNewAnswer)
	defer cancel()

	answer, err := f.svc.SubmitAnswer(f.partner.ID, f.submitDTO())
	require.NoError(t, err)

	select {
	case ev := <-events:
		published, ok := ev.(*model.Answer)
		require.True(t, ok, "expected *model.Answer, got %T", ev)
		assert.Equal(t, answer.ID, published.ID)
		assert.Equal(t, "Favorite color?", published.Question.Text)
		assert.Equal(t, "List1", published.AddressList.Title)
		require.NotNil(t, published.User)
		assert.Equal(t, "demo", published.User.Username)
	case <-time.After(time.Second):
		t.Fatal("no newAnswer event delivered")
	}

	// Exactly one event per submission.
	select {
	case ev := <-events:
		t.Fatalf("unexpected second event: %#v", ev)
	case <-time.After(50 * time.Millisecond):
	}

	// A subscriber that connects after the publish sees nothing; missed
	// events are not replayed.
	late, lateCancel := f.broker.Subscribe(TopicNewAnswer)
	defer lateCancel()
	select {
	case ev := <-late:
		t.Fatalf("late subscriber received replayed event: %#v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubmitAnswerValidationFailures(t *testing.T) {
	f := newSubmissionFixture(t)

	cases := []struct {
		name    string
		userID  uint
		mutate  func(*dto.SubmitAnswerDTO)
		wantMsg string
	}{
		{
			name:    "unknown user",
			userID:  9999,
			wantMsg: "User 9999 not found",
		},
		{
			name:    "admin role rejected",
			userID:  f.admin.ID,
			wantMsg: "is not a partner role user",
		},
		{
			name:    "user without organizations",
			userID:  f.stranger.ID,
			wantMsg: "No organizations found",
		},
		{
			name:   "unknown question",
			userID: f.partner.ID,
			mutate: func(d *dto.SubmitAnswerDTO) {
				d.QuestionID = 9999
			},
			wantMsg: "Question 9999 is not valid",
		},
		{
			name:   "question from another organization",
			userID: f.partner.ID,
			mutate: func(d *dto.SubmitAnswerDTO) {
				d.QuestionID = f.otherQuestion.ID
			},
			wantMsg: "is not a member of organization",
		},
		{
			name:   "address list of another organization",
			userID: f.partner.ID,
			mutate: func(d *dto.SubmitAnswerDTO) {
				d.AddressListID = f.otherList.ID
			},
			wantMsg: "is not valid for organization",
		},
		{
			name:   "address outside the list",
			userID: f.partner.ID,
			mutate: func(d *dto.SubmitAnswerDTO) {
				d.AddressID = f.outsideAddress.ID
			},
			wantMsg: "is not a member of address list",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := f.submitDTO()
			if tc.mutate != nil {
				tc.mutate(&req)
			}
			answer, err := f.svc.SubmitAnswer(tc.userID, req)
			require.Error(t, err)
			assert.Nil(t, answer)
			assert.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}

	// None of the rejected submissions left a row behind.
	var count int64
	require.NoError(t, f.db.Model(&model.Answer{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitBatch(t *testing.T) {
	f := newSubmissionFixture(t)

	req := dto.SubmitBatchDTO{
		AddressListID: f.list.ID,
		AddressID:     f.address.ID,
		Answers: []dto.BatchAnswerDTO{
			{QuestionID: f.question.ID, AnswerText: "Green"},
			{QuestionID: f.question2.ID, AnswerText: "Two cats"},
		},
	}
	resp, err := f.svc.SubmitBatch(f.org.ID, f.questionnaire.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Submitted)
	assert.Equal(t, 0, resp.Failed)
	assert.Empty(t, resp.Errors)

	var answers []model.Answer
	require.NoError(t, f.db.Find(&answers).Error)
	require.Len(t, answers, 2)
	for _, a := range answers {
		assert.Nil(t, a.UserID, "batch answers carry no user")
		assert.Equal(t, "{}", a.InlineReferenceData)
		assert.Equal(t, f.list.ID, a.AddressListID)
		assert.Equal(t, f.address.ID, a.AddressID)
	}
}

func TestSubmitBatchPartialFailure(t *testing.T) {
	f := newSubmissionFixture(t)

	req := dto.SubmitBatchDTO{
		AddressListID: f.list.ID,
		AddressID:     f.address.ID,
		Answers: []dto.BatchAnswerDTO{
			{QuestionID: f.question.ID, AnswerText: "Green"},
			{QuestionID: 9999, AnswerText: "orphan"},
		},
	}
	resp, err := f.svc.SubmitBatch(f.org.ID, f.questionnaire.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Submitted)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "9999")

	// The valid answer stays persisted; there is no rollback.
	var count int64
	require.NoError(t, f.db.Model(&model.Answer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitBatchScopeChecks(t *testing.T) {
	f := newSubmissionFixture(t)

	base := dto.SubmitBatchDTO{
		AddressListID: f.list.ID,
		AddressID:     f.address.ID,
		Answers:       []dto.BatchAnswerDTO{{QuestionID: f.question.ID, AnswerText: "x"}},
	}

	t.Run("questionnaire of another organization", func(t *testing.T) {
		_, err := f.svc.SubmitBatch(f.otherOrg.ID, f.questionnaire.ID, base)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("address list of another organization", func(t *testing.T) {
		req := base
		req.AddressListID = f.otherList.ID
		_, err := f.svc.SubmitBatch(f.org.ID, f.questionnaire.ID, req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("address outside the list", func(t *testing.T) {
		req := base
		req.AddressID = f.outsideAddress.ID
		_, err := f.svc.SubmitBatch(f.org.ID, f.questionnaire.ID, req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	var count int64
	require.NoError(t, f.db.Model(&model.Answer{}).Count(&count).Error)
	assert.Zero(t, count)
}
