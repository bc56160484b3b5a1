package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards"
	"github.com/spf13/cobra"
)

const Version = "v0.1.0"

var versions = map[string]string{
	"":            Version,
	"noderewards": noderewards.Version,
}

type versionCmdOptions struct {
	Modules string
}

func NewVersionCommand() *cobra.Command {
	opts := &versionCmdOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show noderewards version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return versionHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Modules, "module", "", `Show version of a specific module. E.g. "noderewards"`)

	return cmd
}

func versionHandler(opts *versionCmdOptions, cmd *cobra.Command, _ []string) error {
	version, ok := versions[opts.Modules]
	if !ok {
		return errors.Wrap(errs.Unsupported, "Invalid module name")
	}
	fmt.Fprintln(cmd.OutOrStdout(), version)
	return nil
}
