// Package stubsync appends minimal model stubs to general catalog files for
// model IDs that exist in a pricing file but not in the general file.
// Existing file content (formatting, key order, all existing entries) is
// preserved byte-for-byte; only the new stubs are spliced in before the root
// closing brace.
package stubsync

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// reservedKeys exist in both pricing and general files but must never be
// synced or overwritten.
var reservedKeys = map[string]struct{}{
	"name":        {},
	"description": {},
	"default":     {},
}

// minimalStub is the fixed entry body for a newly added model. Only
// max_tokens; top_k, top_p, log_p and the like are excluded.
const minimalStub = `{
  "params": [
    {
      "key": "max_tokens",
      "maxValue": 64000
    }
  ],
  "type": {
    "primary": "chat",
    "supported": [
      "image",
      "pdf",
      "doc",
      "tools"
    ]
  },
  "removeParams": [
    "top_p"
  ]
}`

// Skip explains why a general file was left untouched.
type Skip int

const (
	SkipNone        Skip = iota
	SkipMissingFile      // general file does not exist
	SkipNoRootBrace      // last non-whitespace byte is not "}"
	SkipBadTail          // no newline immediately before the root brace
)

// Report describes the outcome for one general file.
type Report struct {
	General string
	Added   []string
	Skip    Skip
}

// GeneralPaths resolves which general file(s) a pricing file syncs to. The
// general directory is the sibling of the pricing file's directory. OpenAI
// pricing syncs to both openai and open-ai.
func GeneralPaths(pricingPath, override string) []string {
	if override != "" {
		return []string{override}
	}
	root := filepath.Dir(filepath.Dir(pricingPath))
	name := filepath.Base(pricingPath)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "openai" {
		return []string{
			filepath.Join(root, "general", "openai.json"),
			filepath.Join(root, "general", "open-ai.json"),
		}
	}
	return []string{filepath.Join(root, "general", name)}
}

// File syncs one pricing file into its general file(s) and returns a report
// per target. A missing or unparseable pricing file is an error; a missing
// general file is reported as skipped.
func File(pricingPath, generalOverride string) ([]Report, error) {
	pricingData, err := os.ReadFile(pricingPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing file %s: %w", pricingPath, err)
	}

	var pricing map[string]json.RawMessage
	if err := json.Unmarshal(pricingData, &pricing); err != nil {
		return nil, fmt.Errorf("failed to parse pricing file %s: %w", pricingPath, err)
	}

	var reports []Report
	for _, generalPath := range GeneralPaths(pricingPath, generalOverride) {
		report, err := syncOne(pricing, generalPath)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func syncOne(pricing map[string]json.RawMessage, generalPath string) (Report, error) {
	report := Report{General: generalPath}

	raw, err := os.ReadFile(generalPath)
	if err != nil {
		if os.IsNotExist(err) {
			report.Skip = SkipMissingFile
			return report, nil
		}
		return report, fmt.Errorf("failed to read general file %s: %w", generalPath, err)
	}
	content := string(raw)

	var general map[string]json.RawMessage
	if err := json.Unmarshal(raw, &general); err != nil {
		return report, fmt.Errorf("failed to parse general file %s: %w", generalPath, err)
	}

	missing := missingModels(pricing, general)
	if len(missing) == 0 {
		return report, nil
	}

	indent := detectIndent(content)
	newEntries := buildEntries(missing, indent)

	// Insert before the root closing "}": comma goes on the last existing
	// entry's line, then the new entries.
	rootClose := len(content) - 1
	for rootClose >= 0 && isSpace(content[rootClose]) {
		rootClose--
	}
	if rootClose < 0 || content[rootClose] != '}' {
		report.Skip = SkipNoRootBrace
		return report, nil
	}
	insertAt := rootClose - 1
	if insertAt < 0 || content[insertAt] != '\n' {
		report.Skip = SkipBadTail
		return report, nil
	}
	content = content[:insertAt] + ",\n" + newEntries + "\n" + content[insertAt:]

	if err := os.WriteFile(generalPath, []byte(content), 0644); err != nil {
		return report, fmt.Errorf("failed to write general file %s: %w", generalPath, err)
	}

	report.Added = missing
	return report, nil
}

// missingModels returns the sorted model IDs present in pricing but absent
// from general, excluding reserved keys so they are never added.
func missingModels(pricing, general map[string]json.RawMessage) []string {
	var missing []string
	for id := range pricing {
		if _, reserved := reservedKeys[id]; reserved {
			continue
		}
		if _, exists := general[id]; exists {
			continue
		}
		missing = append(missing, id)
	}
	sort.Strings(missing)
	return missing
}

// detectIndent infers the file's indentation from its first key line
// (e.g. `  "key":` yields two spaces). Falls back to two spaces.
func detectIndent(content string) string {
	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimLeft(line, " \t\r")
		if strings.HasPrefix(stripped, `"`) && strings.Contains(stripped, ":") {
			return line[:strings.Index(line, `"`)]
		}
	}
	return "  "
}

// buildEntries renders one `"id": { ... }` block per model, with the stub
// body re-indented to match the file.
func buildEntries(missing []string, indent string) string {
	stubLines := strings.Split(minimalStub, "\n")
	entries := make([]string, 0, len(missing))
	for _, id := range missing {
		inner := make([]string, 0, len(stubLines)-1)
		for _, line := range stubLines[1:] {
			inner = append(inner, indent+line)
		}
		entries = append(entries, fmt.Sprintf("%s%q: {\n%s", indent, id, strings.Join(inner, "\n")))
	}
	return strings.Join(entries, ",\n")
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
