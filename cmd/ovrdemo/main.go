package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/abyssdigger/ovrkernel/lgr"
	"github.com/abyssdigger/ovrkernel/lock"
)

// Every message type through the global log, twice: with all categories
// enabled and with debug ones masked out.
func st1() {
	logger := lgr.InitWithParams(lgr.LOGMASK_ALL, lgr.DefaultOutput{}, os.Stderr)
	defer logger.Close()
	lgr.LogText("not installed yet, dropped\n")
	lgr.SetGlobalLog(logger)
	for _, mask := range []lgr.MessageType{lgr.LOGMASK_ALL, lgr.LOGMASK_REGULAR} {
		logger.SetMask(mask)
		lgr.LogText("mask %#x, release build: %v\n", uint32(mask), !lgr.BUILD_DEBUG)
		lgr.LogError("error #%d", 1)
		lgr.LogDebug("debug #%d", 2)
		lgr.LogDebugText("debug text #%d\n", 3)
		lgr.LogAssert("assert #%d", 4)
	}
}

// Goroutines sharing a spinning lock.
func st2() {
	const workers, rounds = 8, 10000
	l := lock.New(4000)
	defer l.Close()
	counter := 0
	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for range rounds {
				l.Lock()
				counter++
				l.Unlock()
			}
		})
	}
	wg.Wait()
	log := lgr.GetDefaultLog()
	log.LogMessage(lgr.LOG_TEXT, "tier %s, spin %d of %d requested, counter %d (wants %d)\n",
		l.Tier(), l.SpinCount(), l.RequestedSpinCount(), counter, workers*rounds)
	log.LogMessage(lgr.LOG_TEXT, "stats %+v, open handles %d\n", l.Stats(), lock.OpenHandles())
}

const stage = 0

func main() {
	switch stage {
	case 1:
		st1()
	case 2:
		st2()
	default:
		st1()
		st2()
	}
	fmt.Println("*** FINITA LA COMEDIA ***")
}
