package task_test

import (
	"fmt"
	"time"

	"github.com/evan-idocoding/ztick/rt/task"
)

func ExampleExecutor_chaining() {
	ex := task.NewExecutor()

	fire := task.Times(2, func(float64) error {
		fmt.Println("fire")
		return nil
	})
	reload := task.Once(func(float64) error {
		fmt.Println("reload")
		return nil
	}, task.WithNext(fire))
	ex.Add(reload)

	for i := 0; i < 4; i++ {
		ex.Execute(1.0 / 60)
	}
	fmt.Println(ex.Size())

	// Output:
	// reload
	// fire
	// fire
	// 0
}

func ExampleRepeat() {
	ex := task.NewExecutor()
	ex.Add(task.Repeat(time.Second, func(delta float64) error {
		fmt.Printf("blink after %.2fs\n", delta)
		return nil
	}, task.WithDelay(500*time.Millisecond), task.WithName("blink")))

	for i := 0; i < 9; i++ {
		ex.Execute(0.25)
	}
	st, _ := ex.Snapshot().Get("blink")
	fmt.Println(st.Runs, st.Elapsed)

	// Output:
	// blink after 0.00s
	// blink after 1.00s
	// 2 2.25s
}

func ExampleNewRepeatedSequence() {
	step := func(name string) task.Task {
		return task.Once(func(float64) error {
			fmt.Println(name)
			return nil
		})
	}
	seq := task.NewRepeatedSequence(2, step("left"), step("right"))

	ex := task.NewExecutor()
	ex.Add(seq)
	for ex.Size() > 0 {
		ex.Execute(0)
	}

	// Output:
	// left
	// right
	// left
	// right
}
