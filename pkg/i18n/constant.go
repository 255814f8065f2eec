package i18n

var ALLOW_LANG = map[string]bool{
	"en":    true,
	"zh-CN": true,
}

const DEFAULT_LANG = "en"

const (
	ERROR_INTERNAL          = "error.internal"
	ERROR_NOT_FOUND         = "error.notfound"
	ERROR_INVALIDARGUMENT   = "error.invalidargument"
	ERROR_UNAUTHORIZED      = "error.unauthorized"
	ERROR_FORBIDDEN         = "error.forbidden"
	ERROR_EXIST             = "error.exist"
	ERROR_TOO_MANY_REQUESTS = "error.tooManyRequests"

	ERROR_INVALID_ACCOUNT        = "error.invalid.account"
	ERROR_EMAIL_ALREADY_REGISTED = "error.email_has_already_registed"
	ERROR_PASSWORD_TOO_SHORT     = "error.password_too_short"

	ERROR_RESOURCE_LOAD_FAILED = "error.resource.load_failed"
	ERROR_AI_NOT_CONFIGURED    = "error.ai.not_configured"
	ERROR_AI_EMBEDDING_FAILED  = "error.ai.embedding_failed"
	ERROR_AI_GENERATE_FAILED   = "error.ai.generate_failed"
	ERROR_AI_INCOMPLETE_GUIDE  = "error.ai.incomplete_guide"
)
