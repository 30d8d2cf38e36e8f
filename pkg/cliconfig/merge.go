package cliconfig

// MergeConfig copies the non-zero values of source into target and
// records sourceType for each copied key.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	mergeString := func(key string, dst *string, src string) {
		if src != "" {
			*dst = src
			target.Sources[key] = sourceType
		}
	}
	mergeString("dataDir", &target.DataDir, source.DataDir)
	mergeString("configFile", &target.ConfigFile, source.ConfigFile)
	mergeString("logLevel", &target.LogLevel, source.LogLevel)
	mergeString("logFormat", &target.LogFormat, source.LogFormat)
	mergeString("logFile", &target.LogFile, source.LogFile)

	if boolIsSet(source, "yaml") {
		target.YAML = source.YAML
		target.Sources["yaml"] = sourceType
	}
	if boolIsSet(source, "json") {
		target.JSON = source.JSON
		target.Sources["json"] = sourceType
	}
}

// boolIsSet reports whether a boolean key was explicitly set in source.
// Without SetFields only true counts as set.
func boolIsSet(cfg *CLIConfig, key string) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[key]
	}
	switch key {
	case "yaml":
		return cfg.YAML
	case "json":
		return cfg.JSON
	}
	return false
}
