package launch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func validParams() Params {
	return Params{
		WorkerMemoryMB:              2048,
		WorkerVirtualCores:          1,
		WorkerExtraArgs:             "-Ddfs.datanode.du.reserved=0",
		WorkersPerContainer:         4,
		WorkerLaunchDelay:           "30s",
		CoordinatorMemoryMB:         4096,
		CoordinatorVirtualCores:     2,
		CoordinatorExtraArgs:        "-Xmx3g",
		CoordinatorMetricsPeriodSec: 60,
		Env:                         map[string]string{"JAVA_HOME": "/usr/lib/jvm"},
	}
}

func TestNewDerivesEnv(t *testing.T) {
	p := validParams()
	p.Env = map[string]string{
		"FOO":                       "bar",
		EnvCoordinatorArgs:          "user-supplied",
		EnvWorkerArgs:               "user-supplied",
		EnvCoordinatorMetricsPeriod: "999",
	}
	cfg := New(p)

	assert.Equal(t, map[string]string{
		"FOO":                       "bar",
		EnvCoordinatorArgs:          "-Xmx3g",
		EnvWorkerArgs:               "-Ddfs.datanode.du.reserved=0",
		EnvCoordinatorMetricsPeriod: "60",
	}, cfg.Env())

	// the user map is kept as given
	assert.Equal(t, p.Env, cfg.OriginalEnv())
}

func TestNewSynthesizesEmptyArgs(t *testing.T) {
	cfg := New(Params{CoordinatorMetricsPeriodSec: -1})

	env := cfg.Env()
	require.Len(t, env, 3)
	assert.Equal(t, "", env[EnvCoordinatorArgs])
	assert.Equal(t, "", env[EnvWorkerArgs])
	assert.Equal(t, "-1", env[EnvCoordinatorMetricsPeriod])
	assert.False(t, cfg.MetricsEnabled())
}

func TestConfigIsImmutable(t *testing.T) {
	p := validParams()
	cfg := New(p)

	p.Env["JAVA_HOME"] = "/changed"
	p.Env["NEW"] = "1"
	cfg.Env()["JAVA_HOME"] = "/changed"
	cfg.OriginalEnv()["JAVA_HOME"] = "/changed"
	cfg.Params().Env["JAVA_HOME"] = "/changed"

	assert.Equal(t, map[string]string{"JAVA_HOME": "/usr/lib/jvm"}, cfg.OriginalEnv())
	assert.Equal(t, "/usr/lib/jvm", cfg.Env()["JAVA_HOME"])
}

func TestAccessors(t *testing.T) {
	cfg := New(validParams())

	assert.Equal(t, 2048, cfg.WorkerMemoryMB())
	assert.Equal(t, 1, cfg.WorkerVirtualCores())
	assert.Equal(t, "-Ddfs.datanode.du.reserved=0", cfg.WorkerExtraArgs())
	assert.Equal(t, 4, cfg.WorkersPerContainer())
	assert.Equal(t, "30s", cfg.WorkerLaunchDelay())
	assert.Equal(t, 4096, cfg.CoordinatorMemoryMB())
	assert.Equal(t, 2, cfg.CoordinatorVirtualCores())
	assert.Equal(t, "-Xmx3g", cfg.CoordinatorExtraArgs())
	assert.Equal(t, 60, cfg.CoordinatorMetricsPeriodSec())
	assert.True(t, cfg.MetricsEnabled())

	delay, err := cfg.WorkerLaunchDelaySeconds()
	require.NoError(t, err)
	assert.Equal(t, int64(30), delay)
}

func TestWorkerLaunchDelayEmpty(t *testing.T) {
	cfg := New(Params{})

	delay, err := cfg.WorkerLaunchDelaySeconds()
	require.NoError(t, err)
	assert.Zero(t, delay)
}

func TestVerifyBounds(t *testing.T) {
	const maxMemory, maxVcores = 8192, 8

	tests := []struct {
		name   string
		mutate func(*Params)
		field  string
	}{
		{"worker memory zero", func(p *Params) { p.WorkerMemoryMB = 0 }, "workerMemoryMB"},
		{"worker memory negative", func(p *Params) { p.WorkerMemoryMB = -1 }, "workerMemoryMB"},
		{"worker memory above ceiling", func(p *Params) { p.WorkerMemoryMB = maxMemory + 1 }, "workerMemoryMB"},
		{"worker memory at ceiling", func(p *Params) { p.WorkerMemoryMB = maxMemory }, ""},
		{"worker vcores zero", func(p *Params) { p.WorkerVirtualCores = 0 }, "workerVirtualCores"},
		{"worker vcores above ceiling", func(p *Params) { p.WorkerVirtualCores = maxVcores + 1 }, "workerVirtualCores"},
		{"worker vcores at ceiling", func(p *Params) { p.WorkerVirtualCores = maxVcores }, ""},
		{"coordinator memory zero", func(p *Params) { p.CoordinatorMemoryMB = 0 }, "coordinatorMemoryMB"},
		{"coordinator memory above ceiling", func(p *Params) { p.CoordinatorMemoryMB = maxMemory + 1 }, "coordinatorMemoryMB"},
		{"coordinator memory at ceiling", func(p *Params) { p.CoordinatorMemoryMB = maxMemory }, ""},
		{"coordinator vcores zero", func(p *Params) { p.CoordinatorVirtualCores = 0 }, "coordinatorVirtualCores"},
		{"coordinator vcores above ceiling", func(p *Params) { p.CoordinatorVirtualCores = maxVcores + 1 }, "coordinatorVirtualCores"},
		{"coordinator vcores minimum", func(p *Params) { p.CoordinatorVirtualCores = 1 }, ""},
		{"workers per container zero", func(p *Params) { p.WorkersPerContainer = 0 }, "workersPerContainer"},
		{"workers per container one", func(p *Params) { p.WorkersPerContainer = 1 }, ""},
		{"metrics period disabled", func(p *Params) { p.CoordinatorMetricsPeriodSec = -5 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			err := New(p).Verify(maxMemory, maxVcores)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.Len(t, multierr.Errors(err), 1)
		})
	}
}

func TestVerifyReportsEveryViolation(t *testing.T) {
	p := validParams()
	p.WorkerMemoryMB = 0
	p.CoordinatorVirtualCores = 100
	p.WorkersPerContainer = -2

	errs := multierr.Errors(New(p).Verify(8192, 8))
	require.Len(t, errs, 3)

	var fields []string
	for _, err := range errs {
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		fields = append(fields, verr.Field)
	}
	assert.Equal(t, []string{"workerMemoryMB", "coordinatorVirtualCores", "workersPerContainer"}, fields)
	assert.Contains(t, errs[0].Error(), "workerMemoryMB (0) must be between 0 and 8192")
	assert.Contains(t, errs[2].Error(), "workersPerContainer (-2) must be > 0")
}

func TestVerifyPositive(t *testing.T) {
	p := validParams()
	p.WorkerMemoryMB = 1 << 30
	p.CoordinatorVirtualCores = 512
	assert.NoError(t, New(p).VerifyPositive())

	p.WorkersPerContainer = 0
	err := New(p).VerifyPositive()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "workersPerContainer", verr.Field)
	assert.Equal(t, 0, verr.Value)

	p = validParams()
	p.CoordinatorMemoryMB = -1
	err = New(p).VerifyPositive()
	require.Error(t, err)
	assert.Equal(t, "coordinatorMemoryMB (-1) must be > 0", err.Error())
}
