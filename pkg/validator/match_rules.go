package validator

// Match passes when value equals the current value of the field named by
// the first argument. Without an argument or a context it fails.
func Match(ctx Context, value string, args ...string) bool {
	if ctx == nil || len(args) == 0 || args[0] == "" {
		return false
	}
	return ctx.Value(args[0]) == value
}
