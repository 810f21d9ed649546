package config

// ApplyDefaults fills unset fields with their defaults. Called by Load and
// by commands that assemble a Config in memory.
func (c *Config) ApplyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Documentation"
	}
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = "/"
	}
	if c.Source.Type == "" {
		c.Source.Type = SourceDir
	}
	if c.Source.Path == "" && c.Source.Type == SourceDir {
		c.Source.Path = "./docs"
	}
	if c.Source.DocsDir == "" {
		c.Source.DocsDir = "."
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "./site"
		c.Output.Clean = true
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.LinkCheck.Subject == "" {
		c.LinkCheck.Subject = "docpress.links.broken"
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = 1316
	}
}
