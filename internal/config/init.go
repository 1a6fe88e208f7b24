package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// exampleComments documents the top-level sections of the example file.
var exampleComments = map[string]string{
	"paths":      "# Site directory, exported notes and generated content.\n# Relative export and content paths resolve against the site directory.",
	"routing":    "# Tag routing: the first tag with a route moves the page into that section.\n# unmatched is \"default\" (keep the folder layout) or \"skip\".",
	"options":    "# Site options. Environment variables and .env files override these.",
	"substitute": "# Site files whose ___OPTION___ placeholders are replaced on every build.",
}

// annotate sets head comments on the top-level keys of an encoded mapping.
func annotate(doc *yaml.Node, comments map[string]string) {
	if doc.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if c, ok := comments[doc.Content[i].Value]; ok {
			doc.Content[i].HeadComment = c
		}
	}
}

// Init writes a commented example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Paths:   PathsConfig{Site: "build", Export: "__vault_export", Content: "content"},
		Routing: defaultRouting(),
		Options: Options{
			OptSiteURL:     "https://notes.example.com",
			OptRepoURL:     "https://github.com/example/notes",
			OptLandingPage: "welcome",
			OptSiteTitle:   "My Notes",
			OptSlugify:     "y",
		},
		SubstituteFiles: Default().SubstituteFiles,
	}

	var doc yaml.Node
	if err := doc.Encode(&example); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	annotate(&doc, exampleComments)
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	// #nosec G306 -- example configuration is not secret
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
