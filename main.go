// Demo: train a linear classifier on synthetic blobs with epoch-based
// training, validation after every epoch, and a final test pass.
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
	flagEpochs = flag.Int("epochs", 5, "number of training epochs")
	flagSeed   = flag.Int64("seed", 42, "random seed")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log, err := logger.InitLogger()
	if err != nil {
		return err
	}
	defer logger.SyncLogger()

	config := utils.DefaultConfig()
	config.MaxEpochs = *flagEpochs
	config.Seed = *flagSeed
	if err := utils.ValidateConfig(config); err != nil {
		return err
	}

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

	progress, err := runner.ProgressBindings(20)
	if err != nil {
		return err
	}
	bindings := append(progress, runner.TimingBindings()...)

	h := hub.New(prometheus.NewRegistry())
	r, err := runner.New(unit, h, log, bindings)
	if err != nil {
		return err
	}

	valLoop, err := runner.NewValLoop(r, valSrc, eval.NewMetrics())
	if err != nil {
		return err
	}
	trainLoop, err := runner.NewEpochBasedTrainLoop(r, trainSrc, config.MaxEpochs, valLoop, config.ValInterval)
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
			fmt.Printf("%-16s %.4f\n", key, v)
		}
	}
	return nil
}
