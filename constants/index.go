package constants

// General messages
const (
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_INPUT                = "Invalid input"
	ERROR_CREATE               = "Create failed"
	ERROR_UPDATE               = "Update failed"
	ERROR_DELETE               = "Delete failed"
	ERROR_PARSE_DATA_TO_LOCALS = "Cannot read parsed input"
	NOT_FOUND_RECORDS          = "Record not found"
	DATA_INPUT_IS_NOT_NUMBER   = "Input is not a number"
	CAN_NOT_HASH_PASSWORD      = "Cannot hash password"
)

// Auth / account messages
const (
	MISSING_LOGIN_INPUT  = "Email and password are required"
	INVALID_CREDENTIALS  = "Invalid email or password"
	EMAIL_ALREADY_EXISTS = "Email already registered"
	WRONG_PASSWORD       = "Wrong password"
	NOT_ADMIN            = "Admin access required"
	FORBIDDEN_OTHER_USER = "Cannot act on another user's account"
	INVALID_DATE_FORMAT  = "Invalid date format, expected YYYY-MM-DD"
)

// Cart / checkout messages
const (
	CART_CLOSED       = "Cart is already checked out"
	CART_EMPTY        = "Cart has no line items"
	SEAT_ALREADY_SOLD = "Seat is already sold for this session"
	SEAT_NOT_IN_CART  = "Seat not found in your cart"
	LINE_NOT_IN_CART  = "Line item not found in your cart"
	CART_NOT_FOUND    = "Cart not found"
	RECEIPT_NOT_FOUND = "Receipt not found"
)

// Error keys returned alongside messages so clients can map failures
// to form fields or purchase states.
const (
	KEY_DUPLICATE_EMAIL = "duplicate_email"
	KEY_WRONG_PASSWORD  = "wrong_password"
	KEY_FORBIDDEN       = "forbidden"
	KEY_NOT_FOUND       = "not_found"
	KEY_INVALID_FORMAT  = "invalid_format"
	KEY_CART_CLOSED     = "cart_closed"
	KEY_EMPTY_CART      = "empty_cart"
	KEY_SEAT_TAKEN      = "seat_taken"
)

// Cart lifecycle
const (
	CART_STATUS_OPEN        = "OPEN"
	CART_STATUS_CHECKED_OUT = "CHECKED_OUT"
)

// Movie lifecycle
const (
	MOVIE_STATUS_COMING_SOON = "COMING_SOON"
	MOVIE_STATUS_NOW_SHOWING = "NOW_SHOWING"
	MOVIE_STATUS_ENDED       = "ENDED"
)
