package optimizer_test

import (
	"fmt"

	"github.com/jonwraymond/simcache/cache"
	"github.com/jonwraymond/simcache/clock"
	"github.com/jonwraymond/simcache/config"
	"github.com/jonwraymond/simcache/optimizer"
)

type cellDay = cache.Pair[int, int]

func Example() {
	host := clock.NewManual()
	opt, err := optimizer.New(optimizer.Options{Host: host})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	temperature, err := optimizer.Register(opt, config.AmbientTemperature,
		func(a cellDay) cellDay { return a },
		func(a cellDay) float64 {
			fmt.Println("computing", a.First, a.Second)
			return 21.0
		},
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	at := cache.PairOf(140, 12)
	fmt.Println(temperature.Call(at))
	host.Advance(60)
	fmt.Println(temperature.Call(at))
	host.Advance(61)
	fmt.Println(temperature.Call(at))

	opt.OnSessionEnd()
	fmt.Println("cached:", temperature.Len())
	// Output:
	// computing 140 12
	// 21
	// 21
	// computing 140 12
	// 21
	// cached: 0
}
