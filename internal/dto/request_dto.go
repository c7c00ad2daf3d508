package dto

// SignInDTO carries credentials for POST /auth/login.
type SignInDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=4"`
	Role     string `json:"role" binding:"omitempty,oneof=admin partner"`
}

type CreateOrganizationDTO struct {
	Name string `json:"name" binding:"required"`
}

// AddOrganizationMemberDTO links an existing user into an organization.
type AddOrganizationMemberDTO struct {
	UserID uint `json:"userId" binding:"required"`
}

type CreateAddressListDTO struct {
	OrganizationID uint   `json:"organizationId" binding:"required"`
	Title          string `json:"title" binding:"required"`
}

// AddListAddressDTO links an existing address into an address list.
type AddListAddressDTO struct {
	AddressID uint `json:"addressId" binding:"required"`
}

type CreateAddressDTO struct {
	Address1 string  `json:"address1" binding:"required"`
	Address2 *string `json:"address2"`
	City     string  `json:"city" binding:"required"`
	State    string  `json:"state" binding:"required"`
	Zipcode  string  `json:"zipcode" binding:"required"`
}

type CreateQuestionnaireDTO struct {
	OrganizationID uint   `json:"organizationId" binding:"required"`
	Title          string `json:"title" binding:"required"`
}

type CreateQuestionDTO struct {
	QuestionnaireID uint   `json:"questionnaireId" binding:"required"`
	Text            string `json:"text" binding:"required"`
}

// CreateAnswerDTO is the administrative create path; it records an answer
// verbatim without the membership validation chain and with an empty
// reference snapshot.
type CreateAnswerDTO struct {
	Text          string `json:"text" binding:"required"`
	QuestionID    uint   `json:"questionId" binding:"required"`
	AddressListID uint   `json:"addressListId" binding:"required"`
	UserID        uint   `json:"userId" binding:"required"`
	AddressID     uint   `json:"addressId" binding:"required"`
}

// SubmitAnswerDTO is the partner submission body, shared by the REST
// endpoint and the GraphQL mutation.
type SubmitAnswerDTO struct {
	QuestionnaireID uint   `json:"questionnaireId" binding:"required"`
	AddressListID   uint   `json:"addressListId" binding:"required"`
	AddressID       uint   `json:"addressId" binding:"required"`
	QuestionID      uint   `json:"questionId" binding:"required"`
	AnswerText      string `json:"answerText" binding:"required"`
}

// BatchAnswerDTO is one answer inside an organization-authenticated batch.
type BatchAnswerDTO struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	AnswerText string `json:"answerText" binding:"required"`
}

// SubmitBatchDTO is the body of the organization-authenticated batch
// submission endpoint.
type SubmitBatchDTO struct {
	AddressListID uint             `json:"addressListId" binding:"required"`
	AddressID     uint             `json:"addressId" binding:"required"`
	Answers       []BatchAnswerDTO `json:"answers" binding:"required,min=1,dive"`
}
