package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCfg(t *testing.T, body string) string {
	fp := t.TempDir() + "/config.yml"
	require.NoError(t, os.WriteFile(fp, []byte(body), 0644))
	return fp
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(writeCfg(t, "ntime_step: 24\n"))
	require.NoError(t, err)
	assert.Equal(t, "gr-a", c.Structure)
	assert.Equal(t, 3600., c.Dt)
	assert.Equal(t, []string{"nse"}, c.JobsFun)
	assert.Equal(t, []float64{1.}, c.WjobsFun)
	assert.Equal(t, "uniform", c.Mapping)
	assert.NotEmpty(t, c.Parameters, "calibrated parameters default to the structure's set")
}

func TestLoad_AllFields(t *testing.T) {
	c, err := Load(writeCfg(t, `
structure: gr-c
dt: 900
jobs_fun: [kge, Cfp50]
wjobs_fun: [0.7, 0.3]
jreg_fun: [prior, smoothing]
wjreg_fun: [1, 2]
wjreg: 0.5
denormalize: true
ost: 48
mapping: hyper-linear
parameters: [cp, cft]
`))
	require.NoError(t, err)
	assert.Equal(t, "gr-c", c.Structure)
	assert.Equal(t, 900., c.Dt)
	assert.Equal(t, []string{"cp", "cft"}, c.Parameters)

	cc := c.CostConfig()
	require.Len(t, cc.Metrics, 2)
	assert.Equal(t, "kge", cc.Metrics[0].Name)
	assert.Equal(t, .7, cc.Metrics[0].Weight)
	require.Len(t, cc.RegTerms, 2)
	assert.Equal(t, .5, cc.Wjreg)
	assert.Equal(t, 48, cc.Ost)
	assert.True(t, cc.Denorm)
}

func TestLoad_UnknownStructure(t *testing.T) {
	_, err := Load(writeCfg(t, "structure: gr-z\n"))
	assert.Error(t, err)
}

func TestLoad_UnknownMetric(t *testing.T) {
	_, err := Load(writeCfg(t, "jobs_fun: [nse, bogus]\n"))
	assert.Error(t, err)
}

func TestLoad_UnknownRegTerm(t *testing.T) {
	_, err := Load(writeCfg(t, "jreg_fun: [bogus]\n"))
	assert.Error(t, err)
}

func TestLoad_WeightMismatch(t *testing.T) {
	_, err := Load(writeCfg(t, "jobs_fun: [nse, kge]\nwjobs_fun: [1]\n"))
	assert.Error(t, err)
}

func TestLoad_UnknownMapping(t *testing.T) {
	_, err := Load(writeCfg(t, "mapping: bogus\n"))
	assert.Error(t, err)
}

func TestMapper(t *testing.T) {
	c, err := Load(writeCfg(t, "mapping: distributed\n"))
	require.NoError(t, err)
	mp, err := c.Mapper()
	require.NoError(t, err)
	require.NotNil(t, mp)
	assert.Equal(t, "distributed", mp.Kind)

	c, err = Load(writeCfg(t, ""))
	require.NoError(t, err)
	mp, err = c.Mapper()
	require.NoError(t, err)
	assert.Nil(t, mp, "uniform mapping stays on the U transforms")

	c, err = Load(writeCfg(t, "mapping: hyper-linear\n"))
	require.NoError(t, err)
	_, err = c.Mapper()
	assert.Error(t, err, "hyper mappings need descriptors the config cannot carry")
}

func TestLoad_NegativeOst(t *testing.T) {
	_, err := Load(writeCfg(t, "ost: -1\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir() + "/absent.yml")
	assert.Error(t, err)
}

func TestSimOptions(t *testing.T) {
	c, err := Load(writeCfg(t, "save_qdomain: true\nprogress: true\n"))
	require.NoError(t, err)
	o := c.SimOptions()
	assert.True(t, o.SaveQDomain)
	assert.True(t, o.Progress)
	assert.Equal(t, 3600., o.Dt)
}
