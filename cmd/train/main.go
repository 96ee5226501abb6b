// loopkit-train: standalone trainer for the loopkit demo classifier.
//
// Usage:
//
//	loopkit-train --regime=epoch --epochs=10 --lr=0.5
//	loopkit-train --config=train.yaml
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"loopkit/data"
	"loopkit/eval"
	"loopkit/hub"
	"loopkit/logger"
	"loopkit/model"
	"loopkit/runner"
	"loopkit/utils"
)

var (
	configPath   = flag.String("config", "", "YAML config file (flags below override it)")
	regime       = flag.String("regime", "", "training regime: epoch, iter")
	epochs       = flag.Int("epochs", 0, "number of training epochs (epoch regime)")
	iters        = flag.Int("iters", 0, "number of training iterations (iter regime)")
	valInterval  = flag.Int("val-interval", -1, "validation interval; 0 disables validation")
	learningRate = flag.Float64("lr", 0, "learning rate")
	batchSize    = flag.Int("batch", 0, "batch size")
	samples      = flag.Int("samples", 0, "number of synthetic samples")
	seed         = flag.Int64("seed", 0, "random seed")
)

func main() {
	flag.Parse()

	config, err := buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := train(config); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func buildConfig() (*utils.Config, error) {
	config := utils.DefaultConfig()
	if *configPath != "" {
		loaded, err := utils.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if *regime != "" {
		config.Regime = *regime
	}
	if *epochs > 0 {
		config.MaxEpochs = *epochs
	}
	if *iters > 0 {
		config.MaxIters = *iters
	}
	if *valInterval >= 0 {
		config.ValInterval = *valInterval
	}
	if *learningRate > 0 {
		config.LearningRate = *learningRate
	}
	if *batchSize > 0 {
		config.BatchSize = *batchSize
	}
	if *samples > 0 {
		config.Samples = *samples
	}
	if *seed != 0 {
		config.Seed = *seed
	}

	if err := utils.ValidateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func train(config *utils.Config) error {
	log, err := logger.InitLogger()
	if err != nil {
		return err
	}
	defer logger.SyncLogger()

	log.Infow("configuration",
		"regime", config.Regime, "epochs", config.MaxEpochs, "iters", config.MaxIters,
		"val_interval", config.ValInterval, "batch", config.BatchSize,
		"lr", config.LearningRate, "samples", config.Samples, "seed", config.Seed)

	rng := rand.New(rand.NewSource(config.Seed))

	trainInputs, trainTargets := data.SyntheticBlobs(config.Samples, config.Features, config.Classes, rng)
	valInputs, valTargets := data.SyntheticBlobs(config.Samples/4, config.Features, config.Classes, rng)
	testInputs, testTargets := data.SyntheticBlobs(config.Samples/4, config.Features, config.Classes, rng)

	trainSrc, err := data.NewInMemorySource(trainInputs, trainTargets, config.BatchSize)
	if err != nil {
		return err
	}
	valSrc, err := data.NewInMemorySource(valInputs, valTargets, config.BatchSize)
	if err != nil {
		return err
	}
	testSrc, err := data.NewInMemorySource(testInputs, testTargets, config.BatchSize)
	if err != nil {
		return err
	}

	unit, err := model.NewLinear(config.Features, config.Classes, config.LearningRate)
	if err != nil {
		return err
	}

	progress, err := runner.ProgressBindings(50)
	if err != nil {
		return err
	}
	bindings := append(progress, runner.TimingBindings()...)

	h := hub.New(prometheus.NewRegistry())
	r, err := runner.New(unit, h, log, bindings)
	if err != nil {
		return err
	}

	var valLoop *runner.ValLoop
	if config.ValInterval > 0 {
		valLoop, err = runner.NewValLoop(r, valSrc, eval.NewMetrics())
		if err != nil {
			return err
		}
	}

	var trainLoop runner.Loop
	switch config.Regime {
	case "epoch":
		trainLoop, err = runner.NewEpochBasedTrainLoop(r, trainSrc, config.MaxEpochs, valLoop, config.ValInterval)
	case "iter":
		trainLoop, err = runner.NewIterBasedTrainLoop(r, trainSrc, config.MaxIters, valLoop, config.ValInterval)
	default:
		err = fmt.Errorf("unknown regime %q", config.Regime)
	}
	if err != nil {
		return err
	}

	testLoop, err := runner.NewTestLoop(r, testSrc, eval.NewMetrics())
	if err != nil {
		return err
	}

	if err := trainLoop.Run(); err != nil {
		return err
	}
	if err := testLoop.Run(); err != nil {
		return err
	}

	for _, key := range h.Keys() {
		if v, ok := h.Latest(key); ok {
			log.Infow("final", "key", key, "value", v)
		}
	}
	return nil
}
