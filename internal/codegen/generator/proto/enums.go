package proto

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/Alia5/protosynth/internal/codegen/schema"
	"github.com/Alia5/protosynth/internal/codegen/textgen"
)

const zeroValue = "0"

func (g *generator) generateEnums() error {
	for ns, enums := range g.model.Enums() {
		g.ensureHeader(ns)

		// Enum value names share one scope per file.
		labels := make(map[string]struct{})
		for _, e := range enums {
			g.writeEnum(ns, e, labels)
		}

		if err := g.flush(ns); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) writeEnum(ns string, e schema.Enum, labels map[string]struct{}) {
	entries, aliased := prepareEnum(e, g.opts.EnumOrder)

	g.out.PushBlock(textgen.KindEnum, e)
	g.out.Write("enum %s ", e.Name)
	g.out.WriteOpenBraceAndIndent()

	if aliased {
		g.logger.Debug("Enum has aliased values", "namespace", ns, "enum", e.Name)
		g.out.WriteLine("option allow_alias = true;")
	}

	for _, entry := range entries {
		label := entry.Label
		if _, seen := labels[label]; seen {
			label = e.Name + label
		} else {
			labels[label] = struct{}{}
		}
		g.out.WriteLine("%s = %s;", label, entry.Value)
	}

	g.out.UnindentAndWriteCloseBrace()
	g.out.NewLine()
	g.out.PopBlock(textgen.NewLineNever)
}

// prepareEnum returns the entries of e in emission order, with a
// {Name}Unknown = 0 entry added when no entry carries the zero value, and
// reports whether two entries share a value.
func prepareEnum(e schema.Enum, order EnumOrder) ([]schema.EnumEntry, bool) {
	entries := slices.Clone(e.Entries)

	aliased, hasZero := false, false
	values := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, dup := values[entry.Value]; dup {
			aliased = true
		}
		values[entry.Value] = struct{}{}
		if entry.Value == zeroValue {
			hasZero = true
		}
	}
	if !hasZero {
		entries = append(entries, schema.EnumEntry{Label: e.Name + "Unknown", Value: zeroValue})
	}

	slices.SortStableFunc(entries, func(a, b schema.EnumEntry) int {
		az, bz := a.Value == zeroValue, b.Value == zeroValue
		switch {
		case az && !bz:
			return -1
		case bz && !az:
			return 1
		}
		return compareValues(a.Value, b.Value, order)
	})
	return entries, aliased
}

func compareValues(a, b string, order EnumOrder) int {
	if order == EnumOrderNumeric {
		x, errA := strconv.ParseInt(a, 0, 64)
		y, errB := strconv.ParseInt(b, 0, 64)
		switch {
		case errA == nil && errB == nil:
			return cmp.Compare(x, y)
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		}
	}
	return strings.Compare(a, b)
}
