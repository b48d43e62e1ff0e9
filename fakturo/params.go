package fakturo

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// uploadSentinel marks a parameter value as a local file to attach.
const uploadSentinel = '@'

// pathSegment is one component of a flattened parameter key. Segments
// produced from list positions are tagged so the query encoding can drop
// the numeric index without re-parsing rendered keys.
type pathSegment struct {
	name  string
	index bool
}

// Param is a single flattened request parameter.
type Param struct {
	path  []pathSegment
	Value string
}

// Key renders the parameter key in bracket notation, e.g. "a[b][0]".
// List positions keep their numeric index here; Values applies the
// empty-index rewrite required by the API.
func (p Param) Key() string {
	var sb strings.Builder
	for i, seg := range p.path {
		if i == 0 {
			sb.WriteString(seg.name)
			continue
		}
		sb.WriteByte('[')
		sb.WriteString(seg.name)
		sb.WriteByte(']')
	}
	return sb.String()
}

// IsFileUpload reports whether the value names a local file to attach.
func (p Param) IsFileUpload() bool {
	return len(p.Value) > 0 && p.Value[0] == uploadSentinel
}

// FilePath returns the local file path of an upload parameter.
func (p Param) FilePath() string {
	if !p.IsFileUpload() {
		return ""
	}
	return p.Value[1:]
}

// Params is an ordered list of flattened request parameters.
type Params []Param

// Flatten converts a nested parameter structure (maps, slices and scalars)
// into a single-level ordered parameter list whose keys encode nesting via
// bracket notation. Map keys are emitted in sorted order, list elements in
// positional order. Nil values are omitted entirely.
func Flatten(params map[string]any) Params {
	var out Params
	flattenInto(&out, nil, params)
	return out
}

func flattenInto(out *Params, path []pathSegment, v any) {
	switch val := v.(type) {
	case nil:
		return
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flattenInto(out, append(path, pathSegment{name: k}), val[k])
		}
	case []any:
		for i, elem := range val {
			flattenInto(out, append(path, pathSegment{name: strconv.Itoa(i), index: true}), elem)
		}
	default:
		seg := make([]pathSegment, len(path))
		copy(seg, path)
		*out = append(*out, Param{path: seg, Value: formatScalar(val)})
	}
}

// pruneNils strips nil-valued entries from a nested parameter structure.
// Bodies that travel as JSON get the same nil omission Flatten applies on
// the query path; an explicit null would overwrite stored fields that
// omission leaves untouched.
func pruneNils(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			if elem == nil {
				continue
			}
			out[k] = pruneNils(elem)
		}
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, elem := range val {
			if elem == nil {
				continue
			}
			out = append(out, pruneNils(elem))
		}
		return out
	default:
		return v
	}
}

// formatScalar renders a scalar parameter value as a string.
func formatScalar(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprint(val)
	}
}

// Values renders the parameters as url.Values for query-string encoding.
// List index segments are rewritten to the empty-index form ("items[0]"
// becomes "items[]") while the key is still a decoded segment list, so a
// value that happens to contain an encoded bracket sequence can never be
// mangled. Relative order of same-key entries is preserved.
func (ps Params) Values() url.Values {
	values := make(url.Values, len(ps))
	for _, p := range ps {
		var sb strings.Builder
		for i, seg := range p.path {
			if i == 0 {
				sb.WriteString(seg.name)
				continue
			}
			sb.WriteByte('[')
			if !seg.index {
				sb.WriteString(seg.name)
			}
			sb.WriteByte(']')
		}
		values.Add(sb.String(), p.Value)
	}
	return values
}

// Pairs returns the pre-normalization key/value view of the parameters.
func (ps Params) Pairs() map[string]string {
	pairs := make(map[string]string, len(ps))
	for _, p := range ps {
		pairs[p.Key()] = p.Value
	}
	return pairs
}

// SplitFile extracts the first upload parameter, if any, and returns the
// remaining parameters to send as plain form fields alongside the file.
func (ps Params) SplitFile() (field, path string, rest Params, ok bool) {
	for i, p := range ps {
		if !p.IsFileUpload() {
			continue
		}
		rest = make(Params, 0, len(ps)-1)
		rest = append(rest, ps[:i]...)
		rest = append(rest, ps[i+1:]...)
		return p.Key(), p.FilePath(), rest, true
	}
	return "", "", ps, false
}

// HasFileUpload reports whether any parameter value carries the upload
// sentinel, turning the request into a multipart upload.
func (ps Params) HasFileUpload() bool {
	for _, p := range ps {
		if p.IsFileUpload() {
			return true
		}
	}
	return false
}
