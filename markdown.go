package jsonish

import "strings"

// fencedBlock is one ```tag\n...\n``` span found in the input.
type fencedBlock struct {
	tag  string
	body string
}

// findFencedBlocks scans for fenced code blocks delimited by ``` (§4.4).
// It is a plain linear scan, not a full Markdown parser: LLM output is not
// guaranteed to be valid Markdown, only to contain fence-shaped spans.
func findFencedBlocks(input string) []fencedBlock {
	var blocks []fencedBlock
	i := 0
	for {
		open := strings.Index(input[i:], "```")
		if open < 0 {
			break
		}
		open += i
		lineEnd := strings.IndexByte(input[open+3:], '\n')
		var tag string
		bodyStart := open + 3
		if lineEnd >= 0 {
			tag = strings.TrimSpace(input[open+3 : open+3+lineEnd])
			bodyStart = open + 3 + lineEnd + 1
		} else {
			tag = strings.TrimSpace(input[open+3:])
			bodyStart = len(input)
		}
		close := strings.Index(input[bodyStart:], "```")
		if close < 0 {
			// Unterminated fence: treat the remainder as the body of an
			// incomplete block rather than dropping it silently.
			blocks = append(blocks, fencedBlock{tag: tag, body: input[bodyStart:]})
			break
		}
		close += bodyStart
		blocks = append(blocks, fencedBlock{tag: tag, body: input[bodyStart:close]})
		i = close + 3
	}
	return blocks
}

// extractMarkdown implements the Markdown Extractor (C, §4.3). Each fenced
// block's body is recursively parsed by the same raw-parser pipeline.
func extractMarkdown(input string, opts Options, depth int) (*Value, bool) {
	blocks := findFencedBlocks(input)
	if len(blocks) == 0 {
		return nil, false
	}
	wrapped := make([]*Value, 0, len(blocks))
	for _, b := range blocks {
		inner, err := parseRaw(b.body, opts, depth+1)
		if err != nil {
			continue
		}
		wrapped = append(wrapped, NewMarkdown(b.tag, inner))
	}
	switch len(wrapped) {
	case 0:
		return nil, false
	case 1:
		return wrapped[0], true
	default:
		return NewAnyOf(wrapped, "markdown"), true
	}
}
