package errors

var (
	// storage
	StorageRecordDoesNotExist   = NewError(100, "record does not exist")
	StorageRecordAlreadyExists  = NewError(101, "record already exists")
	StorageCoreError            = NewError(102, "storage error")
	StorageNotInTransaction     = NewError(103, "storage is not in transaction")
	StorageAlreadyInTransaction = NewError(104, "storage is already in transaction")
	StorageUnknownScheme        = NewError(105, "unknown storage scheme")

	// command semantics
	Unauthorized  = NewError(200, "unauthorized")
	NotFound      = NewError(201, "not found")
	AlreadyExists = NewError(202, "already exists")
	InUse         = NewError(203, "still in use")
	InvalidInput  = NewError(204, "invalid input")

	// contract lifecycle
	ContractNotInstantiated     = NewError(300, "contract is not instantiated")
	ContractAlreadyInstantiated = NewError(301, "contract is already instantiated")
	ContractNameMismatch        = NewError(302, "stored contract name does not match")
	ContractVersionTooNew       = NewError(303, "stored contract version is newer than the running code")
	InvalidVersion              = NewError(304, "invalid version string")

	// envelope
	BadPublicAddress         = NewError(400, "failed to parse public address")
	InvalidSignature         = NewError(401, "signature verification failed")
	HashDoesNotMatch         = NewError(402, "`hash` does not match with the body")
	UnknownOperationType     = NewError(403, "unknown operation type")
	InvalidOperation         = NewError(404, "invalid operation")
	TransactionAlreadyExists = NewError(405, "transaction was already executed")
	InvalidMessage           = NewError(406, "failed to decode message")
	TransactionNotFound      = NewError(407, "transaction not found")

	// http
	BadRequestParameter = NewError(500, "bad request parameter")
	TooManyRequests     = NewError(501, "too many requests")
	InternalServerError = NewError(502, "internal server error")
	UnexpectedResponse  = NewError(503, "unexpected response from node")
)
