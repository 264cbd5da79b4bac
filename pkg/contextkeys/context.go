package contextkeys

// Custom key type avoids collisions with other packages.
type contextKey string

// DBContextKey stores the *gorm.DB handle on the request context.
const DBContextKey = contextKey("db")
