package customer

// CreateCustomerRequest is the new-customer form payload.
type CreateCustomerRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=120"`
	Phone         string `json:"phone" validate:"omitempty,max=32"`
	AccountNumber string `json:"account_number" validate:"omitempty,max=32"`
}

// UpdateCustomerRequest carries editable customer fields.
type UpdateCustomerRequest struct {
	Name          string `json:"name" validate:"omitempty,min=1,max=120"`
	Phone         string `json:"phone" validate:"omitempty,max=32"`
	AccountNumber string `json:"account_number" validate:"omitempty,max=32"`
}
