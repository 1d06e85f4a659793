package observe_test

import (
	"context"
	"fmt"

	"github.com/jonwraymond/simcache/observe"
)

func ExampleOpMeta_SpanName() {
	meta := observe.OpMeta{Name: "detect", Kind: observe.KindScan}
	fmt.Println(meta.SpanName())
	// Output:
	// simcache.scan.detect
}

func ExampleMiddleware_Run() {
	mw := observe.NewMiddleware(nil, nil, observe.NopLogger())
	err := mw.Run(context.Background(), observe.OpMeta{Name: "warmup"}, func(context.Context) error {
		fmt.Println("working")
		return nil
	})
	fmt.Println(err)
	// Output:
	// working
	// <nil>
}
