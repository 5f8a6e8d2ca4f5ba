package ocr

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorker struct {
	text   string
	closed int
}

func (f *fakeWorker) Recognize(ctx context.Context, image []byte) (string, error) {
	return f.text + ":" + string(image), nil
}

func (f *fakeWorker) Close() error {
	f.closed++
	return nil
}

func countingFactory(w Worker, err error) (Factory, *int) {
	calls := 0
	return func(ctx context.Context) (Worker, error) {
		calls++
		if err != nil {
			return nil, err
		}
		return w, nil
	}, &calls
}

func TestHandle_LazyAcquire(t *testing.T) {
	w := &fakeWorker{text: "2h"}
	factory, calls := countingFactory(w, nil)
	h := NewHandle(factory)

	assert.False(t, h.Started())
	assert.Equal(t, 0, *calls)

	got, err := h.Recognize(context.Background(), []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, "2h:a", got)

	_, err = h.Recognize(context.Background(), []byte("b"))
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
	assert.True(t, h.Started())
}

func TestHandle_FactoryErrorRetries(t *testing.T) {
	boom := errors.New("no binary")
	factory, calls := countingFactory(nil, boom)
	h := NewHandle(factory)

	_, err := h.Recognize(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
	_, err = h.Recognize(context.Background(), nil)
	assert.Error(t, err)
	assert.Equal(t, 2, *calls)
	assert.False(t, h.Started())
}

func TestHandle_Close(t *testing.T) {
	w := &fakeWorker{}
	factory, _ := countingFactory(w, nil)
	h := NewHandle(factory)

	//closing an unused handle never starts the worker
	require.NoError(t, NewHandle(factory).Close())

	_, err := h.Recognize(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
	assert.Equal(t, 1, w.closed)

	_, err = h.Recognize(context.Background(), nil)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestHandle_Concurrent(t *testing.T) {
	factory, calls := countingFactory(&fakeWorker{text: "x"}, nil)
	h := NewHandle(factory)
	defer h.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.Recognize(context.Background(), nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, *calls)
}

func TestScreenRecognizer(t *testing.T) {
	factory, _ := countingFactory(&fakeWorker{text: "Jane\n\n 3h "}, nil)
	h := NewHandle(factory)
	defer h.Close()

	r := NewScreenRecognizer(h, func(ctx context.Context) ([]byte, error) {
		return []byte("png"), nil
	})
	got, err := r.RecognizeText(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jane 3h :png", got)
}

func TestScreenRecognizer_CaptureError(t *testing.T) {
	factory, calls := countingFactory(&fakeWorker{}, nil)
	r := NewScreenRecognizer(NewHandle(factory), func(ctx context.Context) ([]byte, error) {
		return nil, errors.New("page closed")
	})
	_, err := r.RecognizeText(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, *calls)
}

func TestTesseractWorker_Args(t *testing.T) {
	w := &TesseractWorker{config: &Config{TesseractPath: "tesseract", Languages: "eng+vie", DataPath: "/tessdata"}}
	assert.Equal(t, []string{"stdin", "stdout", "-l", "eng+vie", "--tessdata-dir", "/tessdata"}, w.args())

	w = &TesseractWorker{config: &Config{TesseractPath: "tesseract"}}
	assert.Equal(t, []string{"stdin", "stdout"}, w.args())
}

func TestNewTesseractFactory_MissingBinary(t *testing.T) {
	factory := NewTesseractFactory(&Config{TesseractPath: "/nonexistent/tesseract"}, zerolog.Nop())
	_, err := factory(context.Background())
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, "tesseract", config.TesseractPath)
	assert.Equal(t, "eng", config.Languages)
	assert.Equal(t, "", config.DataPath)
}
