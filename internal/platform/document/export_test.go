package document

// Plain exposes the plain Go form of a tree to external tests.
func Plain(v Value) any { return v.plain() }
