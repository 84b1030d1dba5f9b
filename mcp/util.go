package mcp

// Helper for extracting the argument map from a tool call
func getArgs(arguments interface{}) (map[string]interface{}, bool) {
	if arguments == nil {
		return map[string]interface{}{}, true
	}
	args, ok := arguments.(map[string]interface{})
	return args, ok
}

// Helper for converting string arguments safely
func getStringArg(args map[string]interface{}, key string) (string, bool) {
	val, ok := args[key].(string)
	return val, ok
}
