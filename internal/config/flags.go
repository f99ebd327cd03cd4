package config

import "flag"

// Flags are command-line overrides applied on top of file and environment settings.
type Flags struct {
	ConfigPath  string
	Input       string
	Output      string
	Report      string
	Country     string
	Verify      bool
	TimeoutMs   int
	Concurrency int
	Strict      bool
	LogLevel    string
}

// RegisterFlags binds the overrides to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.ConfigPath, "config", "", "YAML config file (default $"+configPathEnv+")")
	fs.StringVar(&f.Input, "input", "", "JSON document with the records")
	fs.StringVar(&f.Output, "output", "", "result document path, - for stdout")
	fs.StringVar(&f.Report, "report", "", "optional DOCX summary path")
	fs.StringVar(&f.Country, "country", "", "keep only records of this country")
	fs.BoolVar(&f.Verify, "verify", false, "probe candidates live instead of only deriving them")
	fs.IntVar(&f.TimeoutMs, "timeout", defaultTimeoutMs, "per-request timeout in milliseconds")
	fs.IntVar(&f.Concurrency, "concurrency", defaultConcurrency, "number of concurrent probe workers")
	fs.BoolVar(&f.Strict, "strict", false, "only report records with a declared endpoint")
	fs.StringVar(&f.LogLevel, "log-level", "", "debug, info, warn or error")
	return f
}

// Apply copies every flag that was given explicitly. Call after fs.Parse.
func (f *Flags) Apply(fs *flag.FlagSet, cfg *Config) {
	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if set["input"] {
		cfg.Input.Path = f.Input
	}
	if set["output"] {
		cfg.Output.Path = f.Output
	}
	if set["report"] {
		cfg.Output.Report = f.Report
	}
	if set["country"] {
		cfg.Input.Country = f.Country
	}
	if set["verify"] {
		cfg.Probe.Verify = f.Verify
	}
	if set["timeout"] {
		cfg.Probe.TimeoutMs = f.TimeoutMs
	}
	if set["concurrency"] {
		cfg.Probe.Concurrency = f.Concurrency
	}
	if set["strict"] {
		cfg.Probe.Strict = f.Strict
	}
	if set["log-level"] {
		cfg.Logging.Level = f.LogLevel
	}
}
