// The web command serves rendered images over HTTP.
package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/df07/go-sphere-tracer/web/server"
)

var (
	port      = flag.Int("port", 8080, "Port to serve on")
	maxPixels = flag.Int("max-pixels", 1920*1080, "Largest width*height a single render request may ask for")
	scenesDir = flag.String("scenes-dir", "scenes", "Directory of YAML scene files")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	glog.Infof("flags:")
	glog.Infof("port: %d", *port)
	glog.Infof("max-pixels: %d", *maxPixels)
	glog.Infof("scenes-dir: %q", *scenesDir)

	webServer := server.NewServer(*port, *maxPixels, *scenesDir)

	glog.Infof("Visit http://localhost:%d/api/render to start rendering", *port)

	if err := webServer.Start(); err != nil {
		glog.Exitf("Error starting server: %v", err)
	}
}
