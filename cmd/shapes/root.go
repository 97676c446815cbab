package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shapecalc/shapecalc/internal/domain"
	"github.com/shapecalc/shapecalc/internal/pkg/logger"
	"github.com/shapecalc/shapecalc/internal/service"
)

// shapeFlags lists the dimension flags each subcommand accepts
var shapeFlags = map[domain.Shape][]string{
	domain.ShapeCircle:    {domain.FieldRadius},
	domain.ShapeRectangle: {domain.FieldLength, domain.FieldWidth},
	domain.ShapeTriangle:  {domain.FieldBase, domain.FieldHeight},
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "shapes",
		Short:         "Compute area, circumference and perimeter of simple shapes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log validation details to stderr")

	newCalculator := func() *service.CalculatorService {
		level := "warn"
		if verbose {
			level = "debug"
		}
		log := logger.Init(logger.Config{Level: level, Format: "console", Output: errOut})
		return service.NewCalculatorService(log.Named("calculator"))
	}

	for _, shape := range domain.Shapes {
		root.AddCommand(newShapeCmd(shape, newCalculator))
	}

	return root
}

func newShapeCmd(shape domain.Shape, newCalculator func() *service.CalculatorService) *cobra.Command {
	fields := shapeFlags[shape]
	values := make(map[string]*float64, len(fields))

	cmd := &cobra.Command{
		Use:   shape.String(),
		Short: fmt.Sprintf("Calculate a %s", shape),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &domain.ShapeInput{}
			for _, field := range fields {
				// Unset flags stay absent so presence checks see them as missing
				if cmd.Flags().Changed(field) {
					setField(input, field, *values[field])
				}
			}

			result, err := newCalculator().Calculate(cmd.Context(), shape, input)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	for _, field := range fields {
		values[field] = cmd.Flags().Float64(field, 0, fmt.Sprintf("%s of the %s", field, shape))
	}

	return cmd
}

func setField(input *domain.ShapeInput, field string, v float64) {
	switch field {
	case domain.FieldRadius:
		input.Radius = domain.Float(v)
	case domain.FieldBase:
		input.Base = domain.Float(v)
	case domain.FieldHeight:
		input.Height = domain.Float(v)
	case domain.FieldLength:
		input.Length = domain.Float(v)
	case domain.FieldWidth:
		input.Width = domain.Float(v)
	}
}
