package nn

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func randomMatrix(rng *rand.Rand, rows, cols int, scale float64) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64() * scale
	}
	return mat.NewDense(rows, cols, data)
}

func randomTargets(rng *rand.Rand, rows, classes int) *mat.Dense {
	y := mat.NewDense(rows, classes, nil)
	for i := 0; i < rows; i++ {
		y.Set(i, rng.IntN(classes), 1)
	}
	return y
}

func TestLinearForward(t *testing.T) {
	l := &Linear{
		Weights: &Parameter{Name: "w", Value: mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})},
		Bias:    &Parameter{Name: "b", Value: mat.NewDense(1, 3, []float64{0.5, -1, 0})},
	}
	x := mat.NewDense(2, 2, []float64{1, 0, 1, 1})

	out, err := l.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 1, 3}, out.RawRowView(0))
	assert.Equal(t, []float64{5.5, 6, 9}, out.RawRowView(1))
}

func TestLinearForwardShapeMismatch(t *testing.T) {
	l := NewLinear("hidden", 4, 3, rand.New(rand.NewPCG(1, 2)))

	_, err := l.Forward(mat.NewDense(2, 5, nil))
	var shapeErr *ShapeMismatchError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, Shape{2, 5}, shapeErr.Left)
	assert.Equal(t, Shape{4, 3}, shapeErr.Right)
}

func TestReLUBackwardZeroesNonPositive(t *testing.T) {
	z := mat.NewDense(1, 4, []float64{-1, 0, 0.5, 2})
	a := ReLU{}.Forward(z)
	assert.Equal(t, []float64{0, 0, 0.5, 2}, a.RawRowView(0))

	dz, err := ReLU{}.Backward(z, mat.NewDense(1, 4, []float64{1, 1, 1, 1}))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1, 1}, dz.RawRowView(0))
}

func TestSoftmaxRowsAreDistributions(t *testing.T) {
	z := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		1000, 1000, -1000,
		-50, 0, 50,
	})
	out := Softmax{}.Forward(z)
	for i := 0; i < 3; i++ {
		row := out.RawRowView(i)
		assert.InDelta(t, 1.0, floats.Sum(row), 1e-12)
		for _, v := range row {
			assert.False(t, math.IsNaN(v))
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
	assert.InDelta(t, 0.5, out.At(1, 0), 1e-12)
}

func TestForwardOutputsAreDistributions(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	net, err := NewDenseClassifier(4, DefaultHidden, 3, rng)
	require.NoError(t, err)

	out, cache, err := net.Forward(randomMatrix(rng, 20, 4, 25))
	require.NoError(t, err)
	require.NotNil(t, cache)

	rows, cols := out.Dims()
	assert.Equal(t, 20, rows)
	assert.Equal(t, 3, cols)
	for i := 0; i < rows; i++ {
		row := out.RawRowView(i)
		assert.InDelta(t, 1.0, floats.Sum(row), 1e-9)
		for _, v := range row {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestForwardRejectsEmptyAndWrongWidth(t *testing.T) {
	net, err := NewDenseClassifier(4, 8, 3, rand.New(rand.NewPCG(5, 6)))
	require.NoError(t, err)

	var shapeErr *ShapeMismatchError
	_, _, err = net.Forward(&mat.Dense{})
	assert.True(t, errors.As(err, &shapeErr))

	_, _, err = net.Forward(mat.NewDense(3, 2, nil))
	assert.True(t, errors.As(err, &shapeErr))
}

func TestInitialisationIsSeeded(t *testing.T) {
	a, err := NewDenseClassifier(4, DefaultHidden, 3, rand.New(rand.NewPCG(42, 42)))
	require.NoError(t, err)
	b, err := NewDenseClassifier(4, DefaultHidden, 3, rand.New(rand.NewPCG(42, 42)))
	require.NoError(t, err)

	pa, pb := a.Parameters(), b.Parameters()
	require.Len(t, pa, 4)
	for i := range pa {
		assert.True(t, mat.Equal(pa[i].Value, pb[i].Value), pa[i].Name)
	}

	limit := 1 / math.Sqrt(4)
	for _, v := range pa[0].Value.RawMatrix().Data {
		assert.LessOrEqual(t, math.Abs(v), limit)
	}
	assert.Equal(t, Shape{4, DefaultHidden}, pa[0].Shape())
	assert.Equal(t, Shape{1, DefaultHidden}, pa[1].Shape())
	assert.Equal(t, Shape{DefaultHidden, 3}, pa[2].Shape())
	assert.Equal(t, Shape{1, 3}, pa[3].Shape())
}

func TestMSE(t *testing.T) {
	pred := mat.NewDense(1, 2, []float64{0.5, 0.5})
	target := mat.NewDense(1, 2, []float64{1, 0})

	loss, err := MSE{}.Compute(pred, target)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, loss, 1e-15)

	grad, err := MSE{}.Gradient(pred, target)
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.5, 0.5}, grad.RawRowView(0))

	_, err = MSE{}.Compute(pred, mat.NewDense(2, 2, nil))
	var shapeErr *ShapeMismatchError
	assert.True(t, errors.As(err, &shapeErr))
}

func TestMSEAveragesOverAllElements(t *testing.T) {
	pred := mat.NewDense(2, 3, []float64{1, 0, 0, 0, 1, 0})
	target := mat.NewDense(2, 3, []float64{0, 1, 0, 0, 1, 0})

	loss, err := MSE{}.Compute(pred, target)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/6.0, loss, 1e-15)

	grad, err := MSE{}.Gradient(pred, target)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/6.0, grad.At(0, 0), 1e-15)
	assert.InDelta(t, -2.0/6.0, grad.At(0, 1), 1e-15)
	assert.Equal(t, 0.0, grad.At(1, 1))
}

func TestSGDStep(t *testing.T) {
	p := &Parameter{Name: "w", Value: mat.NewDense(2, 2, []float64{1, 2, 3, 4})}
	g := mat.NewDense(2, 2, []float64{10, -10, 0, 1})

	require.NoError(t, NewSGD(0.1).Step([]*Parameter{p}, Gradients{g}))
	assert.InDeltaSlice(t, []float64{0, 3, 3, 3.9}, p.Value.RawMatrix().Data, 1e-12)
}

func TestSGDRejectsMismatchWithoutUpdating(t *testing.T) {
	a := &Parameter{Name: "a", Value: mat.NewDense(1, 2, []float64{1, 1})}
	b := &Parameter{Name: "b", Value: mat.NewDense(1, 2, []float64{1, 1})}
	grads := Gradients{mat.NewDense(1, 2, []float64{1, 1}), mat.NewDense(2, 1, []float64{1, 1})}

	err := NewSGD(1).Step([]*Parameter{a, b}, grads)
	var shapeErr *ShapeMismatchError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, []float64{1, 1}, a.Value.RawRowView(0))

	assert.Error(t, NewSGD(1).Step([]*Parameter{a}, grads))
}

func TestBackwardMatchesFiniteDifferences(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	net, err := NewDenseClassifier(4, 6, 3, rng)
	require.NoError(t, err)

	x := randomMatrix(rng, 8, 4, 1.5)
	y := randomTargets(rng, 8, 3)
	loss := MSE{}

	pred, cache, err := net.Forward(x)
	require.NoError(t, err)
	dPred, err := loss.Gradient(pred, y)
	require.NoError(t, err)
	grads, err := net.Backward(cache, dPred)
	require.NoError(t, err)

	for i, p := range net.Parameters() {
		data := p.Value.RawMatrix().Data
		orig := append([]float64(nil), data...)

		f := func(v []float64) float64 {
			copy(data, v)
			out, _, err := net.Forward(x)
			require.NoError(t, err)
			l, err := loss.Compute(out, y)
			require.NoError(t, err)
			return l
		}
		numeric := fd.Gradient(nil, f, orig, &fd.Settings{Formula: fd.Central, Step: 1e-6})
		copy(data, orig)

		analytic := grads[i].RawMatrix().Data
		require.Len(t, analytic, len(numeric), p.Name)
		for j := range numeric {
			assert.InDelta(t, numeric[j], analytic[j], 1e-8+1e-4*math.Abs(numeric[j]), "%s[%d]", p.Name, j)
		}
	}
}

type recordingOptimizer struct {
	params []*Parameter
	grads  Gradients
}

func (r *recordingOptimizer) Step(params []*Parameter, grads Gradients) error {
	r.params, r.grads = params, grads
	return nil
}

func TestApplyGradientsDelegates(t *testing.T) {
	net, err := NewDenseClassifier(2, 3, 2, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)

	before := mat.DenseCopyOf(net.Parameters()[0].Value)
	grads := Gradients{
		mat.NewDense(2, 3, nil), mat.NewDense(1, 3, nil),
		mat.NewDense(3, 2, nil), mat.NewDense(1, 2, nil),
	}
	opt := &recordingOptimizer{}
	require.NoError(t, net.ApplyGradients(grads, opt))

	assert.Len(t, opt.params, 4)
	assert.Equal(t, "hidden.weights", opt.params[0].Name)
	assert.True(t, mat.Equal(before, net.Parameters()[0].Value))
}
