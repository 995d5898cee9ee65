package component

import (
	"slices"

	"github.com/0xalexb/hjarta-config/data"
	"github.com/0xalexb/hjarta-config/keypath"

	"github.com/cockroachdb/errors"
)

// Member describes one document of a component.
type Member struct {
	Filename string
	// Alias is an optional second name for routing.
	Alias string
	// Format names the codec of the member; empty means by file extension.
	Format string
}

// Orders are the member names tried, in order, for each operation kind.
// Names may be filenames or aliases.
type Orders struct {
	Create []string
	Read   []string
	Update []string
	Delete []string
}

// MetaParser converts between a meta document and a Meta.
type MetaParser interface {
	Parse(config *data.MappingData) (*Meta, error)
	Dump(meta *Meta) (*data.MappingData, error)
}

// Meta describes the members of a component and their fallback orders.
type Meta struct {
	// Config is the meta document the Meta was parsed from.
	Config  *data.MappingData
	Orders  Orders
	Members []Member
	Parser  MetaParser
}

// NewMeta parses config with parser, or with DefaultMetaParser when parser
// is nil.
func NewMeta(config *data.MappingData, parser MetaParser) (*Meta, error) {
	if parser == nil {
		parser = DefaultMetaParser{}
	}

	meta, err := parser.Parse(config)
	if err != nil {
		return nil, err
	}

	meta.Config = config
	meta.Parser = parser

	return meta, nil
}

// Filenames returns the member filenames in declaration order.
func (m *Meta) Filenames() []string {
	names := make([]string, len(m.Members))
	for i, member := range m.Members {
		names[i] = member.Filename
	}

	return names
}

// Resolve translates a filename or an alias to the member filename.
func (m *Meta) Resolve(name string) (string, bool) {
	for _, member := range m.Members {
		if member.Filename == name || (member.Alias != "" && member.Alias == name) {
			return member.Filename, true
		}
	}

	return "", false
}

// Member returns the member with the given filename or alias.
func (m *Meta) Member(name string) (Member, bool) {
	filename, ok := m.Resolve(name)
	if !ok {
		return Member{}, false
	}

	idx := slices.IndexFunc(m.Members, func(member Member) bool { return member.Filename == filename })

	return m.Members[idx], true
}

// Validate checks that filenames are unique, that no alias equals a
// filename, that aliases are unique, and that every order names known
// members at most once.
func (m *Meta) Validate() error {
	filenames := make(map[string]struct{}, len(m.Members))

	for _, member := range m.Members {
		if member.Filename == "" {
			return errors.Wrap(ErrInvalidMeta, "member without filename")
		}

		if _, dup := filenames[member.Filename]; dup {
			return errors.Wrapf(ErrInvalidMeta, "duplicate member %q", member.Filename)
		}

		filenames[member.Filename] = struct{}{}
	}

	aliases := make(map[string]struct{}, len(m.Members))

	for _, member := range m.Members {
		if member.Alias == "" {
			continue
		}

		if _, clash := filenames[member.Alias]; clash {
			return errors.Wrapf(ErrInvalidMeta, "alias %q of %q is a member filename", member.Alias, member.Filename)
		}

		if _, dup := aliases[member.Alias]; dup {
			return errors.Wrapf(ErrInvalidMeta, "duplicate alias %q", member.Alias)
		}

		aliases[member.Alias] = struct{}{}
	}

	for kind, order := range m.Orders.all() {
		if _, err := m.resolveOrder(kind, order); err != nil {
			return err
		}
	}

	return nil
}

func (o Orders) all() map[string][]string {
	return map[string][]string{
		"create": o.Create,
		"read":   o.Read,
		"update": o.Update,
		"delete": o.Delete,
	}
}

// resolveOrder translates the names of one order to filenames.
func (m *Meta) resolveOrder(kind string, order []string) ([]string, error) {
	out := make([]string, 0, len(order))

	for _, name := range order {
		filename, ok := m.Resolve(name)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidMeta, "%s order: unknown member %q", kind, name)
		}

		if slices.Contains(out, filename) {
			return nil, errors.Wrapf(ErrInvalidMeta, "%s order: duplicate member %q", kind, name)
		}

		out = append(out, filename)
	}

	return out, nil
}

// DefaultMetaParser reads meta documents shaped like
//
//	members:
//	  - base.yaml
//	  - filename: local.toml
//	    alias: local
//	    config-format: toml
//	order: [local, base.yaml]
//	orders:
//	  create: [local]
//
// Orders missing from orders fall back to order, and order falls back to
// the member list.
type DefaultMetaParser struct{}

// Document keys read by DefaultMetaParser.
const (
	keyMembers  = "members"
	keyOrder    = "order"
	keyOrders   = "orders"
	keyFilename = "filename"
	keyAlias    = "alias"
	keyFormat   = "config-format"
)

// Parse implements MetaParser.
func (DefaultMetaParser) Parse(config *data.MappingData) (*Meta, error) {
	if config == nil {
		return nil, errors.Wrap(ErrInvalidMeta, "no meta document")
	}

	rawMembers, err := config.Get(keypath.NewPath(keypath.Attr(keyMembers)), nil, data.WithRawValue())
	if err != nil {
		return nil, errors.Wrap(err, "members")
	}

	entries, ok := rawMembers.([]any)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidMeta, "members must be a list, not %T", rawMembers)
	}

	meta := &Meta{Members: make([]Member, 0, len(entries))}

	for i, entry := range entries {
		member, err := parseMember(entry)
		if err != nil {
			return nil, errors.Wrapf(err, "member %d", i)
		}

		meta.Members = append(meta.Members, member)
	}

	fallback, err := stringList(config, keypath.NewPath(keypath.Attr(keyOrder)), meta.Filenames())
	if err != nil {
		return nil, err
	}

	for _, o := range []struct {
		name   string
		target *[]string
	}{
		{"create", &meta.Orders.Create},
		{"read", &meta.Orders.Read},
		{"update", &meta.Orders.Update},
		{"delete", &meta.Orders.Delete},
	} {
		*o.target, err = stringList(config, keypath.NewPath(keypath.Attr(keyOrders), keypath.Attr(o.name)), fallback)
		if err != nil {
			return nil, err
		}
	}

	if err := meta.Validate(); err != nil {
		return nil, err
	}

	return meta, nil
}

// Dump implements MetaParser.
func (DefaultMetaParser) Dump(meta *Meta) (*data.MappingData, error) {
	members := make([]any, len(meta.Members))

	for i, member := range meta.Members {
		if member.Alias == "" && member.Format == "" {
			members[i] = member.Filename

			continue
		}

		entry := map[string]any{keyFilename: member.Filename}
		if member.Alias != "" {
			entry[keyAlias] = member.Alias
		}

		if member.Format != "" {
			entry[keyFormat] = member.Format
		}

		members[i] = entry
	}

	orders := make(map[string]any, 4)
	for kind, order := range meta.Orders.all() {
		orders[kind] = toAnySlice(order)
	}

	return data.NewMapping(map[string]any{keyMembers: members, keyOrders: orders}), nil
}

func parseMember(entry any) (Member, error) {
	switch v := entry.(type) {
	case string:
		return Member{Filename: v}, nil
	case map[string]any:
		var member Member

		for key, target := range map[string]*string{keyFilename: &member.Filename, keyAlias: &member.Alias, keyFormat: &member.Format} {
			raw, ok := v[key]
			if !ok {
				continue
			}

			s, isString := raw.(string)
			if !isString {
				return Member{}, errors.Wrapf(ErrInvalidMeta, "%s must be a string, not %T", key, raw)
			}

			*target = s
		}

		return member, nil
	default:
		return Member{}, errors.Wrapf(ErrInvalidMeta, "member must be a string or a mapping, not %T", entry)
	}
}

func stringList(config *data.MappingData, p keypath.Path, def []string) ([]string, error) {
	raw, err := config.Get(p, nil, data.WithRawValue())
	if err != nil {
		return nil, errors.Wrap(err, p.String())
	}

	if raw == nil {
		return slices.Clone(def), nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidMeta, "%s must be a list, not %T", p, raw)
	}

	out := make([]string, len(items))

	for i, item := range items {
		s, isString := item.(string)
		if !isString {
			return nil, errors.Wrapf(ErrInvalidMeta, "%s[%d] must be a string, not %T", p, i, item)
		}

		out[i] = s
	}

	return out, nil
}

func toAnySlice(names []string) []any {
	out := make([]any, len(names))
	for i, name := range names {
		out[i] = name
	}

	return out
}
