package dtos

// SessionRequest carries the identity-provider profile for the caller.
// The external subject comes from the verified token, never the body.
// Both fields are best-effort fill-ins for missing token claims; the
// body is optional and never validated on its own.
type SessionRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type SelectRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=STUDENT LANDLORD"`
}

type HealthCheckResponse struct {
	Status string `json:"status"`
}
