package domain

// SubjectType differentiates end-user vs admin tokens.
type SubjectType string

const (
	SubjectTypeAccount SubjectType = "ACCOUNT"
	SubjectTypeAdmin   SubjectType = "ADMIN"
)
