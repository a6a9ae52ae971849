/*
Copyright © 2020 ConsenSys

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package parallel

import (
	"runtime"
	"sync"
)

// Execute runs work over [iStart, iEnd) split into one contiguous chunk
// per CPU and waits for completion.
func Execute(iStart, iEnd int, work func(int, int)) {
	<-ExecuteAsync(iStart, iEnd, work)
}

// ExecuteAsync runs work over [iStart, iEnd) split into one contiguous
// chunk per CPU and returns a channel that closes when all chunks are
// done.
func ExecuteAsync(iStart, iEnd int, work func(int, int)) chan struct{} {
	nbIterations := iEnd - iStart // iEnd is not included
	nbTasks := runtime.NumCPU()
	nbIterationsPerCpus := nbIterations / nbTasks

	// more CPUs than iterations: one iteration per task
	if nbIterationsPerCpus < 1 {
		nbIterationsPerCpus = 1
		nbTasks = nbIterations
	}

	var wg sync.WaitGroup

	extraTasks := nbIterations - nbTasks*nbIterationsPerCpus
	extraTasksOffset := 0

	for i := 0; i < nbTasks; i++ {
		wg.Add(1)
		start := iStart + i*nbIterationsPerCpus + extraTasksOffset
		end := start + nbIterationsPerCpus
		if extraTasks > 0 {
			end++
			extraTasks--
			extraTasksOffset++
		}
		go func() {
			work(start, end)
			wg.Done()
		}()
	}

	chDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(chDone)
	}()
	return chDone
}
