package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/cheggaaa/pb/v3"

	"github.com/carbonml/carbonml/compose"
	"github.com/carbonml/carbonml/core/model"
	"github.com/carbonml/carbonml/dataset"
	"github.com/carbonml/carbonml/inspect"
	"github.com/carbonml/carbonml/pkg/log"
	"github.com/carbonml/carbonml/plotting"
	"github.com/carbonml/carbonml/selection"
)

var (
	name    = "carbonml"
	version = "25.Aug.2026"
)

// TargetColumn is the label column every input dataset must carry.
const TargetColumn = "CarbonEmission"

type args struct {
	Data     string `arg:"required,-d,--data" help:"path to the training CSV"`
	Output   string `arg:"-o,--output" default:"model.gob" help:"path for the persisted best model"`
	Plot     string `arg:"-p,--plot" default:"feature_importance.png" help:"path for the importance chart"`
	LogLevel string `arg:"--loglevel" default:"info" help:"log level (debug/info/warn/error)"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf("%s trains carbon-emission regressors, keeps the best by R², and explains it", name)
}

func main() {
	var args args
	arg.MustParse(&args)

	log.SetupLogger(args.LogLevel)

	tbl, err := dataset.ReadCSV(args.Data)
	if err != nil {
		fatal("reading dataset", err)
	}

	features, y, err := tbl.SplitTarget(TargetColumn)
	if err != nil {
		fatal("splitting target column", err)
	}

	pre, numeric, categorical, err := compose.NewPreprocessor(features)
	if err != nil {
		fatal("building preprocessor", err)
	}
	slog.Info("dataset loaded",
		log.OperationKey, "load",
		log.SamplesKey, features.NumRows(),
		log.FeaturesKey, features.NumColumns(),
		log.NumericColumnsKey, numeric,
		log.CategoricalColumnsKey, categorical,
	)

	candidates := selection.NewDefaultCandidates(pre)

	trainer := selection.NewTrainer()
	bar := pb.StartNew(len(candidates))
	trainer.Progress = func(name string, i, n int) {
		bar.SetCurrent(int64(i))
	}

	results, err := trainer.Train(candidates, features, y)
	if err != nil {
		bar.Finish()
		fatal("training candidates", err)
	}
	bar.SetCurrent(int64(len(candidates)))
	bar.Finish()

	for _, r := range results {
		fmt.Printf("%-18s MAE=%.4f RMSE=%.4f R2=%.4f\n", r.Name, r.MAE, r.RMSE, r.R2)
	}

	best, err := selection.SelectBest(results)
	if err != nil {
		fatal("selecting best candidate", err)
	}
	fmt.Printf("\nbest model: %s (R2=%.4f)\n", best.Name, best.R2)

	table, ok, err := inspect.Explain(best.Pipeline)
	if err != nil {
		fatal("explaining best candidate", err)
	}
	if ok {
		top := &inspect.ImportanceTable{Rows: table.Top(10)}
		fmt.Printf("\ntop features:\n%s", top.String())

		if err := plotting.SaveImportanceChart(table, best.Name, args.Plot, 15); err != nil {
			fatal("writing importance chart", err)
		}
		slog.Info("importance chart written", log.ModelNameKey, best.Name, "path", args.Plot)
	} else {
		slog.Info("selected model exposes no importances", log.ModelNameKey, best.Name)
	}

	// Persist last, so an aborted run leaves no model artifact behind.
	if err := model.SaveModel(best.Pipeline, args.Output); err != nil {
		fatal("saving model", err)
	}
	slog.Info("model saved", log.ModelNameKey, best.Name, "path", args.Output)
}

func fatal(msg string, err error) {
	slog.Error(msg, log.ErrAttr(err))
	os.Exit(1)
}
