package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template is a named system prompt stored as yaml in the prompts dir.
// Selecting one conditions the results phase on a domain.
type Template struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Prompt      string `yaml:"prompt"`
}

const defaultAWSTemplate = `name: aws
description: Condition the agent on AWS infrastructure queries using boto3.
prompt: |
  # You are an AWS data analyst.
  Your job is to get the requested AWS information using the tools provided.
  You must follow all instructions below:
  * Use tools available to you. Tools use boto3 and the ambient AWS credentials.
  * Return all information provided by the tools unless asked otherwise.
  * Do not make up information.
  * If a tool returns an error, return the tool name and the error message.
  * Return the results in the following JSON format. Do not include markdown or formatting such as ` + "```json" + `:
  {
      "final_result": "string",
      "error": {
          "tool_name": "string",
          "error_message": "error_message"
      }
  }
`

// WriteDefaults ensures promptsDir exists and seeds it with the builtin
// templates. Existing files are left alone so user edits survive.
func WriteDefaults(promptsDir string) error {
	if err := os.MkdirAll(promptsDir, os.FileMode(0o755)); err != nil {
		return fmt.Errorf("failed to create prompts dir: %w", err)
	}
	awsPath := filepath.Join(promptsDir, "aws.yaml")
	if _, err := os.Stat(awsPath); os.IsNotExist(err) {
		if err := os.WriteFile(awsPath, []byte(defaultAWSTemplate), os.FileMode(0o644)); err != nil {
			return fmt.Errorf("failed to write default template: %w", err)
		}
	}
	return nil
}

// List loads every template in promptsDir, sorted by name.
func List(promptsDir string) ([]Template, error) {
	entries, err := os.ReadDir(promptsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read prompts dir: %w", err)
	}
	var out []Template
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		tmpl, err := loadFile(filepath.Join(promptsDir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, tmpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func loadFile(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("failed to read template '%v': %w", path, err)
	}
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return Template{}, fmt.Errorf("failed to parse template '%v': %w", path, err)
	}
	if tmpl.Name == "" {
		tmpl.Name = strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), ".yaml"), ".yml")
	}
	if tmpl.Prompt == "" {
		return Template{}, fmt.Errorf("template '%v' has no prompt", path)
	}
	return tmpl, nil
}

// Resolve turns the -system-prompt flag value into prompt text. The value is
// tried as a template name in promptsDir first, then as a file path. Yaml
// files are parsed as templates, anything else is used verbatim.
func Resolve(promptsDir, nameOrPath string) (string, error) {
	if nameOrPath == "" {
		return Results, nil
	}
	templates, err := List(promptsDir)
	if err != nil {
		return "", err
	}
	for _, tmpl := range templates {
		if tmpl.Name == nameOrPath {
			return tmpl.Prompt, nil
		}
	}
	if _, err := os.Stat(nameOrPath); err != nil {
		return "", fmt.Errorf("system prompt '%v' is neither a template name nor a readable file", nameOrPath)
	}
	if strings.HasSuffix(nameOrPath, ".yaml") || strings.HasSuffix(nameOrPath, ".yml") {
		tmpl, err := loadFile(nameOrPath)
		if err != nil {
			return "", err
		}
		return tmpl.Prompt, nil
	}
	data, err := os.ReadFile(nameOrPath)
	if err != nil {
		return "", fmt.Errorf("failed to read system prompt file: %w", err)
	}
	return string(data), nil
}
