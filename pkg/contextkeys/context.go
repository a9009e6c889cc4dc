package contextkeys

// Custom type so our keys cannot collide with other packages' context values.
type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB (the shared
// pool, or a transaction injected by the test harness) is stored.
const DBContextKey = contextKey("db")
