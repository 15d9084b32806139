package validator

// Request payloads validated at the handler edge. Multipart form fields
// bind through the form tags; JSON endpoints use the json tags.

type SignupRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,user_role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type StudentCreateRequest struct {
	FullName         string `form:"full_name" validate:"required,min=2,max=100"`
	Email            string `form:"email" validate:"required,email,max=255"`
	Phone            string `form:"phone" validate:"omitempty,max=20"`
	DateOfBirth      string `form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Address          string `form:"address" validate:"omitempty,max=500"`
	CourseEnrolled   string `form:"course_enrolled" validate:"required,max=100"`
	EnrolledAt       string `form:"enrolled_at" validate:"omitempty,datetime=2006-01-02"`
	CompletionStatus string `form:"completion_status" validate:"omitempty,completion_status"`
}

// StudentUpdateRequest uses pointers so absent fields are left untouched.
type StudentUpdateRequest struct {
	FullName         *string `form:"full_name" validate:"omitempty,min=2,max=100"`
	Email            *string `form:"email" validate:"omitempty,email,max=255"`
	Phone            *string `form:"phone" validate:"omitempty,max=20"`
	DateOfBirth      *string `form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Address          *string `form:"address" validate:"omitempty,max=500"`
	CourseEnrolled   *string `form:"course_enrolled" validate:"omitempty,max=100"`
	EnrolledAt       *string `form:"enrolled_at" validate:"omitempty,datetime=2006-01-02"`
	CompletionStatus *string `form:"completion_status" validate:"omitempty,completion_status"`
}

type TutorCreateRequest struct {
	FullName       string `form:"full_name" validate:"required,min=2,max=100"`
	Email          string `form:"email" validate:"required,email,max=255"`
	Phone          string `form:"phone" validate:"omitempty,max=20"`
	Specialization string `form:"specialization" validate:"omitempty,max=100"`
}

type TutorUpdateRequest struct {
	FullName       *string `form:"full_name" validate:"omitempty,min=2,max=100"`
	Email          *string `form:"email" validate:"omitempty,email,max=255"`
	Phone          *string `form:"phone" validate:"omitempty,max=20"`
	Specialization *string `form:"specialization" validate:"omitempty,max=100"`
}

type AssignmentTokenRequest struct {
	StudentID uint   `json:"student_id" validate:"required"`
	TaskID    string `json:"task_id" validate:"required,max=100"`
}

type AssignmentTokenVerifyRequest struct {
	Token string `json:"token" validate:"required"`
}
