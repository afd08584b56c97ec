package config

import (
	"fmt"

	"github.com/javajack/xlstyle"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	errs = append(errs, c.validateOutput()...)
	errs = append(errs, c.validateCacheMode()...)
	errs = append(errs, c.validateSheets()...)
	errs = append(errs, c.validateRules()...)

	return errs
}

func (c *Config) validateOutput() []ValidationError {
	if c.Output != "" {
		return nil
	}
	return []ValidationError{{Path: "output", Message: "must not be empty"}}
}

func (c *Config) validateCacheMode() []ValidationError {
	if _, err := xlstyle.ParseCacheMode(c.CacheMode); err != nil {
		return []ValidationError{{
			Path:    "cache_mode",
			Message: fmt.Sprintf("must be one of FAST_MAP, JSON_MAP, WEAK_MAP, NO_CACHE, got '%s'", c.CacheMode),
		}}
	}
	return nil
}

func (c *Config) validateSheets() []ValidationError {
	var errs []ValidationError
	if len(c.Sheets) == 0 {
		return []ValidationError{{Path: "sheets", Message: "at least one sheet is required"}}
	}

	seen := make(map[string]bool)
	for i, sheet := range c.Sheets {
		path := fmt.Sprintf("sheets[%d]", i)
		switch {
		case sheet.Name == "":
			errs = append(errs, ValidationError{Path: path + ".name", Message: "must not be empty"})
		case seen[sheet.Name]:
			errs = append(errs, ValidationError{Path: path + ".name", Message: fmt.Sprintf("duplicate sheet '%s'", sheet.Name)})
		}
		seen[sheet.Name] = true

		if sheet.Repeat < 0 {
			errs = append(errs, ValidationError{Path: path + ".repeat", Message: fmt.Sprintf("must not be negative, got %d", sheet.Repeat)})
		}
		if len(sheet.Columns) == 0 {
			errs = append(errs, ValidationError{Path: path + ".columns", Message: "at least one column is required"})
		}
		for j, col := range sheet.Columns {
			colPath := fmt.Sprintf("%s.columns[%d]", path, j)
			if col.Key == "" {
				errs = append(errs, ValidationError{Path: colPath + ".key", Message: "must not be empty"})
			}
			errs = append(errs, validateStyle(colPath+".style", col.Style)...)
		}
		errs = append(errs, validateStyle(path+".cell_style", sheet.CellStyle)...)
	}
	return errs
}

func (c *Config) validateRules() []ValidationError {
	var errs []ValidationError
	for i, rule := range c.Rules {
		path := fmt.Sprintf("rules[%d]", i)
		if rule.When == "" {
			errs = append(errs, ValidationError{Path: path + ".when", Message: "must not be empty"})
		} else if err := xlstyle.CompileRules([]xlstyle.StyleRule{{Condition: rule.When}}); err != nil {
			errs = append(errs, ValidationError{Path: path + ".when", Message: err.Error()})
		}
		errs = append(errs, validateStyle(path+".style", &rule.Style)...)
	}
	return errs
}

func validateStyle(path string, spec *StyleSpec) []ValidationError {
	if spec == nil {
		return nil
	}
	s, err := spec.Style()
	if err != nil {
		return []ValidationError{{Path: path, Message: err.Error()}}
	}
	var errs []ValidationError
	for _, issue := range xlstyle.Validate(s) {
		if issue.Severity == xlstyle.SeverityError {
			errs = append(errs, ValidationError{Path: path + "." + issue.Field, Message: issue.Message})
		}
	}
	return errs
}
