package domain

type CtxKey string

const (
	KeyAccountID     CtxKey = "AccountID"
	KeySessionSecret CtxKey = "SessionSecret"
)
