package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lshigami/canvassing/internal/model"
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

func TestOrganizationFindByAPIKey(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrganizationRepository(db)

	org := model.Organization{Name: "Org1"}
	require.NoError(t, repo.Create(&org))
	require.NotEmpty(t, org.APIKey, "a key is assigned on create")

	found, err := repo.FindByAPIKey(org.APIKey)
	require.NoError(t, err)
	assert.Equal(t, org.ID, found.ID)

	_, err = repo.FindByAPIKey("nope")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestQuestionScopedFinders(t *testing.T) {
	db := newTestDB(t)
	orgRepo := NewOrganizationRepository(db)
	questionRepo := NewQuestionRepository(db)

	org := model.Organization{Name: "Org1"}
	require.NoError(t, orgRepo.Create(&org))
	questionnaire := model.Questionnaire{Title: "Survey", OrganizationID: org.ID}
	require.NoError(t, db.Create(&questionnaire).Error)
	question := model.Question{Text: "Favorite color?", QuestionnaireID: questionnaire.ID}
	require.NoError(t, questionRepo.Create(&question))

	t.Run("with organization ancestry", func(t *testing.T) {
		found, err := questionRepo.FindByIDWithOrganization(question.ID)
		require.NoError(t, err)
		assert.Equal(t, questionnaire.ID, found.Questionnaire.ID)
		assert.Equal(t, org.ID, found.Questionnaire.Organization.ID)
	})

	t.Run("scoped to questionnaire", func(t *testing.T) {
		found, err := questionRepo.FindByIDAndQuestionnaire(question.ID, questionnaire.ID)
		require.NoError(t, err)
		assert.Equal(t, question.ID, found.ID)

		_, err = questionRepo.FindByIDAndQuestionnaire(question.ID, questionnaire.ID+1)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestAddressListScopedToOrganization(t *testing.T) {
	db := newTestDB(t)
	listRepo := NewAddressListRepository(db)
	addressRepo := NewAddressRepository(db)

	org := model.Organization{Name: "Org1"}
	require.NoError(t, db.Create(&org).Error)
	otherOrg := model.Organization{Name: "Org2"}
	require.NoError(t, db.Create(&otherOrg).Error)

	list := model.AddressList{Title: "List1", OrganizationID: org.ID}
	require.NoError(t, listRepo.Create(&list))

	found, err := listRepo.FindByIDAndOrganization(list.ID, org.ID)
	require.NoError(t, err)
	assert.Equal(t, list.ID, found.ID)

	_, err = listRepo.FindByIDAndOrganization(list.ID, otherOrg.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	address := model.Address{Address1: "123 Main St", City: "Springfield", State: "IL", Zipcode: "62701"}
	require.NoError(t, addressRepo.Create(&address))
	require.NoError(t, listRepo.AddAddress(&list, &address))

	withMembers, err := addressRepo.FindByIDWithLists(address.ID)
	require.NoError(t, err)
	require.Len(t, withMembers.AddressLists, 1)
	assert.Equal(t, list.ID, withMembers.AddressLists[0].ID)
}
