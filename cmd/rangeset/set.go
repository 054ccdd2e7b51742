package main

import (
	"io"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/henderiw/rangeset/pkg/seq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// setT implements the set algebra commands.
type setT struct {
	root *rootT

	Normalize *cobra.Command
	Union     *cobra.Command
	Intersect *cobra.Command
	Subtract  *cobra.Command
	Contains  *cobra.Command

	a, b string
	set  string
}

func newSetCommands(root *rootT) *setT {
	s := &setT{root: root}

	s.Normalize = &cobra.Command{
		Use:   "normalize <set>",
		Short: "print the normalized form of a set",
		Args:  cobra.ExactArgs(1),
		RunE:  s.runNormalize,
	}
	s.Union = &cobra.Command{
		Use:   "union",
		Short: "print the union of two sets",
		Args:  cobra.NoArgs,
		RunE:  s.binary("union", (*rangeset.RangeSet[int64]).Union),
	}
	s.Intersect = &cobra.Command{
		Use:   "intersect",
		Short: "print the intersection of two sets",
		Args:  cobra.NoArgs,
		RunE:  s.binary("intersect", (*rangeset.RangeSet[int64]).Intersect),
	}
	s.Subtract = &cobra.Command{
		Use:   "subtract",
		Short: "print the points of --a that are not in --b",
		Args:  cobra.NoArgs,
		RunE:  s.binary("subtract", (*rangeset.RangeSet[int64]).Subtract),
	}
	s.Contains = &cobra.Command{
		Use:   "contains <point>...",
		Short: "report which points are members of --set",
		Args:  cobra.MinimumNArgs(1),
		RunE:  s.runContains,
	}

	for _, cmd := range []*cobra.Command{s.Union, s.Intersect, s.Subtract} {
		cmd.Flags().StringVar(&s.a, "a", "{}", "left operand")
		cmd.Flags().StringVar(&s.b, "b", "{}", "right operand")
	}
	s.Contains.Flags().StringVar(&s.set, "set", "{}", "set to test against")
	return s
}

func (s *setT) runNormalize(cmd *cobra.Command, args []string) error {
	set, err := rangeset.ParseInt64(args[0])
	if err != nil {
		return err
	}
	s.root.log.V(1).Info("normalized", "input", args[0], "intervals", set.Len())
	renderSet(cmd.OutOrStdout(), set)
	return nil
}

func (s *setT) binary(
	op string, fn func(a, b *rangeset.RangeSet[int64]) *rangeset.RangeSet[int64],
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := rangeset.ParseInt64(s.a)
		if err != nil {
			return errors.Wrap(err, "--a")
		}
		b, err := rangeset.ParseInt64(s.b)
		if err != nil {
			return errors.Wrap(err, "--b")
		}
		result := fn(a, b)
		s.root.log.V(1).Info(op, "a", a.String(), "b", b.String(), "result", result.String())
		renderSet(cmd.OutOrStdout(), result)
		return nil
	}
}

func (s *setT) runContains(cmd *cobra.Command, args []string) error {
	set, err := rangeset.ParseInt64(s.set)
	if err != nil {
		return errors.Wrap(err, "--set")
	}
	points := make([]int64, 0, len(args))
	for _, arg := range args {
		p, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "point %q", arg)
		}
		points = append(points, p)
	}

	tbl := tablewriter.NewWriter(cmd.OutOrStdout())
	tbl.SetHeader([]string{"Point", "Contained"})
	for _, p := range points {
		tbl.Append([]string{strconv.FormatInt(p, 10), strconv.FormatBool(set.Contains(p))})
	}
	members := seq.CountFunc(slices.Values(points), set.Contains)
	tbl.SetFooter([]string{"Members", strconv.Itoa(members)})
	tbl.Render()
	return nil
}

func renderSet(w io.Writer, set *rangeset.RangeSet[int64]) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Start", "End", "Length"})
	for iv := range set.Enumerate() {
		tbl.Append([]string{
			strconv.FormatInt(iv.Start, 10),
			strconv.FormatInt(iv.End, 10),
			strconv.FormatInt(iv.End-iv.Start, 10),
		})
	}
	tbl.SetFooter([]string{"", "Total", strconv.FormatInt(rangeset.Measure(set), 10)})
	tbl.Render()
}
