// Package schedule helps collectors that are scheduled in more than one way.
//
// Mux maps the first command line argument to an entrypoint, runs it and
// exits, so one executable can serve discovery and several collection
// schedules:
//
//	m := schedule.NewMux("sysmar").
//	    Register("discover", discover).
//	    Register("collect", collect)
//	if !m.Run(ctx, os.Args) {
//	    collect(ctx, os.Args[1:])
//	}
//
// Carousel drives a long running collector that polls several targets,
// spreading the polls evenly over an interval.
package schedule
