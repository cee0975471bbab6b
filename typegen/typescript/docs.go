package typescript

import (
	"encoding/xml"
	"io"
	"strings"
)

// hintText holds the documentation line appended for each Hint
var hintText = map[Hint]string{
	HintDuration:       "Duration in milliseconds.",
	HintDateTimeOffset: "ISO-8601 date-time string with offset.",
}

// RenderDoc renders a declaration's or member's documentation as a JSDoc
// block (unindented, no trailing newline). Hint lines are appended after
// the doc text, or form the whole block when there is none. Returns ""
// when there is nothing to render.
func RenderDoc(raw string, hints []Hint) string {
	lines := ExtractDoc(raw)

	var hintLines []string
	for _, h := range hints {
		if text, ok := hintText[h]; ok {
			hintLines = append(hintLines, text)
		}
	}
	if len(lines) > 0 && len(hintLines) > 0 {
		lines = append(lines, "")
	}
	lines = append(lines, hintLines...)
	if len(lines) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("/**\n")
	for _, line := range lines {
		if line == "" {
			sb.WriteString(" *\n")
			continue
		}
		sb.WriteString(" * ")
		sb.WriteString(strings.ReplaceAll(line, "*/", "*\\/"))
		sb.WriteByte('\n')
	}
	sb.WriteString(" */")
	return sb.String()
}

// ExtractDoc returns the summary and remarks text of an XML documentation
// comment as trimmed lines, with one blank line between sections. Text
// without markup is taken as the summary. Malformed documentation yields
// nil.
func ExtractDoc(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if !strings.Contains(raw, "<") {
		return normalizeLines(raw)
	}

	sections, err := parseXMLDoc(raw)
	if err != nil {
		return nil
	}

	var lines []string
	for _, text := range []string{sections["summary"], sections["remarks"]} {
		sectionLines := normalizeLines(text)
		if len(sectionLines) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, sectionLines...)
	}
	return lines
}

// parseXMLDoc collects the text of the top-level <summary> and <remarks>
// elements, flattening inline references
func parseXMLDoc(raw string) (map[string]string, error) {
	dec := xml.NewDecoder(strings.NewReader("<doc>" + raw + "</doc>"))
	dec.Strict = true

	sections := make(map[string]string)
	var (
		section    string
		text       strings.Builder
		seeValue   string
		seeHasText bool
		inSee      bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return sections, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if section == "" {
				if name == "summary" || name == "remarks" {
					section = name
					text.Reset()
				}
				continue
			}
			switch name {
			case "see", "seealso":
				inSee, seeHasText = true, false
				seeValue = seeReference(t.Attr)
			case "paramref", "typeparamref":
				text.WriteString(attr(t.Attr, "name"))
			case "c":
				text.WriteByte('`')
			case "para":
				text.WriteString("\n\n")
			case "br":
				text.WriteByte('\n')
			}

		case xml.EndElement:
			name := t.Name.Local
			if section == "" {
				continue
			}
			switch name {
			case section:
				sections[section] += text.String()
				section = ""
			case "see", "seealso":
				if !seeHasText {
					text.WriteString(seeValue)
				}
				inSee = false
			case "c":
				text.WriteByte('`')
			case "para":
				text.WriteString("\n\n")
			}

		case xml.CharData:
			if section == "" {
				continue
			}
			if inSee && strings.TrimSpace(string(t)) != "" {
				seeHasText = true
			}
			text.Write(t)
		}
	}
}

// seeReference renders a <see> target: cref names lose their member-kind
// prefix and namespace, langword and href are used as written
func seeReference(attrs []xml.Attr) string {
	if cref := attr(attrs, "cref"); cref != "" {
		if i := strings.Index(cref, ":"); i == 1 {
			cref = cref[2:]
		}
		if i := strings.Index(cref, "("); i >= 0 {
			cref = cref[:i]
		}
		if i := strings.LastIndex(cref, "."); i >= 0 {
			cref = cref[i+1:]
		}
		return cref
	}
	if word := attr(attrs, "langword"); word != "" {
		return word
	}
	return attr(attrs, "href")
}

func attr(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// normalizeLines trims every line, drops leading and trailing blank lines
// and collapses runs of blank lines into one
func normalizeLines(text string) []string {
	var lines []string
	blank := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			blank = len(lines) > 0
			continue
		}
		if blank {
			lines = append(lines, "")
			blank = false
		}
		lines = append(lines, line)
	}
	return lines
}
