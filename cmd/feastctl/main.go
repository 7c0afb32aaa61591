package main

import (
	"context"
	"os"
	"os/signal"
	"path"

	"github.com/azure/feast-azure/cmd/feastctl/subcommands/apply"
	"github.com/azure/feast-azure/cmd/feastctl/subcommands/common"
	subinit "github.com/azure/feast-azure/cmd/feastctl/subcommands/init"
	"github.com/azure/feast-azure/cmd/feastctl/subcommands/logger"
	"github.com/azure/feast-azure/cmd/feastctl/subcommands/objects"
	"github.com/azure/feast-azure/cmd/feastctl/subcommands/project"
	subreg "github.com/azure/feast-azure/cmd/feastctl/subcommands/registry"
	subver "github.com/azure/feast-azure/cmd/feastctl/subcommands/version"
	"github.com/azure/feast-azure/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := logger.Default(name)

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cf := try.To(common.Flags(".")).OrFatal(logger)
	init := try.To(subinit.New()).OrFatal(logger)
	proj := try.To(project.New()).OrFatal(logger)
	entity := try.To(objects.New(objects.Entity)).OrFatal(logger)
	featureview := try.To(objects.New(objects.FeatureView)).OrFatal(logger)
	featureservice := try.To(objects.New(objects.FeatureService)).OrFatal(logger)
	applyAll := try.To(apply.New()).OrFatal(logger)
	registry := try.To(subreg.New()).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)

	feastctl := try.To(
		flarc.NewCommandGroup(
			"Feast control plane commandline interface",
			cf,
			flarc.WithSubcommand("init", init),
			flarc.WithSubcommand("project", proj),
			flarc.WithSubcommand("entity", entity),
			flarc.WithSubcommand("featureview", featureview),
			flarc.WithSubcommand("featureservice", featureservice),
			flarc.WithSubcommand("apply", applyAll),
			flarc.WithSubcommand("registry", registry),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, feastctl, flarc.WithHelp(true)))
}
