package shift

import "context"

type Service interface {
	CreateTemplate(ctx context.Context, companyID string, req CreateTemplateRequest) (TemplateResponse, error)
	GetTemplate(ctx context.Context, id string, companyID string) (TemplateResponse, error)
	ListTemplates(ctx context.Context, companyID string) ([]TemplateResponse, error)
	DeleteTemplate(ctx context.Context, id string, companyID string) error

	// Assign places employees on a template for a calendar date. A template
	// can be assigned at most once per date.
	Assign(ctx context.Context, companyID string, req CreateAssignmentRequest) (AssignmentResponse, error)
	ListAssignments(ctx context.Context, companyID string, from, to string) ([]AssignmentResponse, error)
	DeleteAssignment(ctx context.Context, id string, companyID string) error
}
