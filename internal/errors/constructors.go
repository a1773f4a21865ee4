package errors

// Convenience constructors for the pipeline error taxonomy.

// ParseError reports malformed frontmatter or an unreadable document.
func ParseError(file string, cause error) *ErrorBuilder {
	return WrapError(cause, CategoryParse, "malformed document").File(file)
}

// CompileError reports an MDX body that cannot be compiled.
func CompileError(file string, cause error) *ErrorBuilder {
	return WrapError(cause, CategoryCompile, "cannot compile markup").File(file)
}

// NotFoundError reports a route or document that does not exist.
func NotFoundError(message string) *ErrorBuilder {
	return NewError(CategoryNotFound, message)
}

// ValidationError reports a missing or invalid required field.
func ValidationError(field, message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).WithContext(ContextField, field)
}

// RenderError reports a failure while rendering compiled markup or a template.
func RenderError(message string, cause error) *ErrorBuilder {
	return WrapError(cause, CategoryRender, message)
}

// FileSystemError reports an I/O failure outside a single document.
func FileSystemError(message string, cause error) *ErrorBuilder {
	return WrapError(cause, CategoryFileSystem, message).Fatal()
}

// ConfigError reports an invalid site configuration.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}
