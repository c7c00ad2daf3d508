package graphql

import (
	"context"
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/lshigami/canvassing/internal/dto"
	"github.com/lshigami/canvassing/internal/model"
	"github.com/lshigami/canvassing/internal/pubsub"
	"github.com/lshigami/canvassing/internal/repository"
	"github.com/lshigami/canvassing/internal/service"
	"github.com/rs/zerolog/log"
)

type contextKey string

// Identity keys copied from the HTTP middleware into the resolver context.
const (
	CtxUserID         contextKey = "userId"
	CtxUserRole       contextKey = "userRole"
	CtxOrganizationID contextKey = "organizationId"
)

// Resolver bundles everything the schema's field resolvers need.
type Resolver struct {
	userRepo          repository.UserRepository
	orgRepo           repository.OrganizationRepository
	questionnaireRepo repository.QuestionnaireRepository
	questionRepo      repository.QuestionRepository
	addressListRepo   repository.AddressListRepository
	addressRepo       repository.AddressRepository
	submissionService service.SubmissionService
	broker            *pubsub.Broker
}

func NewResolver(
	userRepo repository.UserRepository,
	orgRepo repository.OrganizationRepository,
	questionnaireRepo repository.QuestionnaireRepository,
	questionRepo repository.QuestionRepository,
	addressListRepo repository.AddressListRepository,
	addressRepo repository.AddressRepository,
	submissionService service.SubmissionService,
	broker *pubsub.Broker,
) *Resolver {
	return &Resolver{
		userRepo:          userRepo,
		orgRepo:           orgRepo,
		questionnaireRepo: questionnaireRepo,
		questionRepo:      questionRepo,
		addressListRepo:   addressListRepo,
		addressRepo:       addressRepo,
		submissionService: submissionService,
		broker:            broker,
	}
}

func ctxUint(ctx context.Context, key contextKey) (uint, bool) {
	v, ok := ctx.Value(key).(uint)
	return v, ok
}

// NewSchema assembles the executable schema: queries over organizations and
// questionnaires, the submitAnswer mutation, and the newAnswer subscription.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	addressType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Address",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"address1": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"address2": &graphql.Field{Type: graphql.String},
			"city":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"state":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"zipcode":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	organizationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Organization",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	questionnaireType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Questionnaire",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"title": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	questionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Question",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"text": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	addressListType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AddressList",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"title": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"username": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"role":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	answerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Answer",
		Fields: graphql.Fields{
			"id":                  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"text":                &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"inlineReferenceData": &graphql.Field{Type: graphql.String},
		},
	})

	// Relation fields are added after construction so the types can refer
	// to each other.
	organizationType.AddFieldConfig("questionnaires", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(questionnaireType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			org, ok := p.Source.(*model.Organization)
			if !ok {
				if v, ok2 := p.Source.(model.Organization); ok2 {
					org = &v
				} else {
					return nil, fmt.Errorf("unexpected source %T", p.Source)
				}
			}
			if org.Questionnaires != nil {
				return org.Questionnaires, nil
			}
			loaded, err := r.orgRepo.FindByIDWithQuestionnaires(org.ID)
			if err != nil {
				return nil, err
			}
			return loaded.Questionnaires, nil
		},
	})
	organizationType.AddFieldConfig("users", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(userType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			org, ok := p.Source.(*model.Organization)
			if !ok {
				if v, ok2 := p.Source.(model.Organization); ok2 {
					org = &v
				} else {
					return nil, fmt.Errorf("unexpected source %T", p.Source)
				}
			}
			return org.Users, nil
		},
	})
	organizationType.AddFieldConfig("addressLists", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(addressListType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			org, ok := p.Source.(*model.Organization)
			if !ok {
				if v, ok2 := p.Source.(model.Organization); ok2 {
					org = &v
				} else {
					return nil, fmt.Errorf("unexpected source %T", p.Source)
				}
			}
			return org.AddressLists, nil
		},
	})

	questionnaireType.AddFieldConfig("organization", &graphql.Field{
		Type: organizationType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			q := sourceQuestionnaire(p.Source)
			if q == nil {
				return nil, fmt.Errorf("unexpected source %T", p.Source)
			}
			if q.Organization.ID != 0 {
				return &q.Organization, nil
			}
			return r.orgRepo.FindByID(q.OrganizationID)
		},
	})
	questionnaireType.AddFieldConfig("questions", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(questionType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			q := sourceQuestionnaire(p.Source)
			if q == nil {
				return nil, fmt.Errorf("unexpected source %T", p.Source)
			}
			if q.Questions != nil {
				return q.Questions, nil
			}
			loaded, err := r.questionnaireRepo.FindByIDWithQuestions(q.ID)
			if err != nil {
				return nil, err
			}
			return loaded.Questions, nil
		},
	})

	questionType.AddFieldConfig("questionnaire", &graphql.Field{
		Type: questionnaireType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			question, ok := p.Source.(*model.Question)
			if !ok {
				if v, ok2 := p.Source.(model.Question); ok2 {
					question = &v
				} else {
					return nil, fmt.Errorf("unexpected source %T", p.Source)
				}
			}
			if question.Questionnaire.ID != 0 {
				return &question.Questionnaire, nil
			}
			return r.questionnaireRepo.FindByID(question.QuestionnaireID)
		},
	})

	addressListType.AddFieldConfig("organization", &graphql.Field{
		Type: organizationType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			list := sourceAddressList(p.Source)
			if list == nil {
				return nil, fmt.Errorf("unexpected source %T", p.Source)
			}
			if list.Organization.ID != 0 {
				return &list.Organization, nil
			}
			return r.orgRepo.FindByID(list.OrganizationID)
		},
	})
	addressListType.AddFieldConfig("addresses", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(addressType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			list := sourceAddressList(p.Source)
			if list == nil {
				return nil, fmt.Errorf("unexpected source %T", p.Source)
			}
			if list.Addresses != nil {
				return list.Addresses, nil
			}
			loaded, err := r.addressListRepo.FindByIDWithAddresses(list.ID)
			if err != nil {
				return nil, err
			}
			return loaded.Addresses, nil
		},
	})

	answerType.AddFieldConfig("question", &graphql.Field{
		Type: questionType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			a := sourceAnswer(p.Source)
			if a == nil {
				return nil, fmt.Errorf("unexpected source %T", p.Source)
			}
			if a.Question.ID != 0 {
				return &a.Question, nil
			}
			return r.questionRepo.FindByID(a.QuestionID)
		},
	})
	answerType.AddFieldConfig("addressList", &graphql.Field{
		Type: addressListType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			a := sourceAnswer(p.Source)
			if a == nil {
				return nil, fmt.Errorf("unexpected source %T", p.Source)
			}
			if a.AddressList.ID != 0 {
				return &a.AddressList, nil
			}
			return r.addressListRepo.FindByID(a.AddressListID)
		},
	})
	answerType.AddFieldConfig("address", &graphql.Field{
		Type: addressType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			a := sourceAnswer(p.Source)
			if a == nil {
				return nil, fmt.Errorf("unexpected source %T", p.Source)
			}
			if a.Address.ID != 0 {
				return &a.Address, nil
			}
			return r.addressRepo.FindByID(a.AddressID)
		},
	})
	answerType.AddFieldConfig("user", &graphql.Field{
		Type: userType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			a := sourceAnswer(p.Source)
			if a == nil {
				return nil, fmt.Errorf("unexpected source %T", p.Source)
			}
			if a.User != nil {
				return a.User, nil
			}
			if a.UserID == nil {
				return nil, nil
			}
			return r.userRepo.FindByID(*a.UserID)
		},
	})

	submitAnswerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SubmitAnswerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"questionnaireId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"addressListId":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"addressId":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"questionId":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"answerText":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"organization": &graphql.Field{
				Type:        organizationType,
				Description: "The organization identified by the caller's API key.",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					orgID, ok := ctxUint(p.Context, CtxOrganizationID)
					if !ok {
						return nil, errors.New("missing organization API key")
					}
					return r.orgRepo.FindByIDWithQuestionnaires(orgID)
				},
			},
			"organizations": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(organizationType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.orgRepo.FindAll()
				},
			},
			"questionnaire": &graphql.Field{
				Type: questionnaireType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					return r.questionnaireRepo.FindByIDWithQuestions(uint(id))
				},
			},
			"questionnaires": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(questionnaireType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.questionnaireRepo.FindAll()
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"submitAnswer": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"submitAnswerDto": &graphql.ArgumentConfig{Type: graphql.NewNonNull(submitAnswerInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID, ok := ctxUint(p.Context, CtxUserID)
					if !ok {
						return nil, errors.New("authentication required")
					}
					input, _ := p.Args["submitAnswerDto"].(map[string]interface{})
					req := dto.SubmitAnswerDTO{
						QuestionnaireID: uintArg(input, "questionnaireId"),
						AddressListID:   uintArg(input, "addressListId"),
						AddressID:       uintArg(input, "addressId"),
						QuestionID:      uintArg(input, "questionId"),
						AnswerText:      stringArg(input, "answerText"),
					}
					if _, err := r.submissionService.SubmitAnswer(userID, req); err != nil {
						return nil, err
					}
					return "Ok", nil
				},
			},
		},
	})

	subscriptionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Subscription",
		Fields: graphql.Fields{
			"newAnswer": &graphql.Field{
				Type: answerType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source, nil
				},
				Subscribe: func(p graphql.ResolveParams) (interface{}, error) {
					events, cancel := r.broker.Subscribe(service.TopicNewAnswer)
					out := make(chan interface{})
					go func() {
						defer cancel()
						defer close(out)
						for {
							select {
							case <-p.Context.Done():
								return
							case ev, ok := <-events:
								if !ok {
									return
								}
								select {
								case out <- ev:
								case <-p.Context.Done():
									return
								}
							}
						}
					}()
					log.Debug().Msg("newAnswer subscription started")
					return out, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:        queryType,
		Mutation:     mutationType,
		Subscription: subscriptionType,
	})
}

func sourceQuestionnaire(src interface{}) *model.Questionnaire {
	switch v := src.(type) {
	case *model.Questionnaire:
		return v
	case model.Questionnaire:
		return &v
	}
	return nil
}

func sourceAddressList(src interface{}) *model.AddressList {
	switch v := src.(type) {
	case *model.AddressList:
		return v
	case model.AddressList:
		return &v
	}
	return nil
}

func sourceAnswer(src interface{}) *model.Answer {
	switch v := src.(type) {
	case *model.Answer:
		return v
	case model.Answer:
		return &v
	}
	return nil
}

func uintArg(m map[string]interface{}, key string) uint {
	if v, ok := m[key].(int); ok {
		return uint(v)
	}
	return 0
}

func stringArg(m map[string]interface{}, key string) string {
	v, _ := m[key].(string)
	return v
}
