package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned by POST /auth/login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type OrganizationResponse struct {
	ID             uint                    `json:"id"`
	Name           string                  `json:"name"`
	APIKey         string                  `json:"apiKey,omitempty"`
	Questionnaires []QuestionnaireResponse `json:"questionnaires,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
}

type QuestionnaireResponse struct {
	ID             uint               `json:"id"`
	Title          string             `json:"title"`
	OrganizationID uint               `json:"organizationId"`
	Questions      []QuestionResponse `json:"questions,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

type QuestionResponse struct {
	ID              uint      `json:"id"`
	Text            string    `json:"text"`
	QuestionnaireID uint      `json:"questionnaireId"`
	CreatedAt       time.Time `json:"createdAt"`
}

type AddressListResponse struct {
	ID             uint              `json:"id"`
	Title          string            `json:"title"`
	OrganizationID uint              `json:"organizationId"`
	Addresses      []AddressResponse `json:"addresses,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type AddressResponse struct {
	ID       uint    `json:"id"`
	Address1 string  `json:"address1"`
	Address2 *string `json:"address2"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	Zipcode  string  `json:"zipcode"`
}

type UserResponse struct {
	ID            uint                   `json:"id"`
	Username      string                 `json:"username"`
	Role          string                 `json:"role"`
	Organizations []OrganizationResponse `json:"organizations,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

type AnswerResponse struct {
	ID                  uint                 `json:"id"`
	Text                string               `json:"text"`
	QuestionID          uint                 `json:"questionId"`
	AddressListID       uint                 `json:"addressListId"`
	UserID              *uint                `json:"userId,omitempty"`
	AddressID           uint                 `json:"addressId"`
	InlineReferenceData string               `json:"inlineReferenceData"`
	Question            *QuestionResponse    `json:"question,omitempty"`
	AddressList         *AddressListResponse `json:"addressList,omitempty"`
	User                *UserResponse        `json:"user,omitempty"`
	Address             *AddressResponse     `json:"address,omitempty"`
	CreatedAt           time.Time            `json:"createdAt"`
}

// BatchSubmitResponse summarizes an organization-authenticated batch
// submission. Failed entries do not roll back successful ones.
type BatchSubmitResponse struct {
	Submitted int      `json:"submitted"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}
