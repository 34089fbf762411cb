package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/carlmjohnson/versioninfo"
	"github.com/iancoleman/strcase"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slices"

	"github.com/astromap/hips/tiles"
	"github.com/astromap/hips/wcs"
)

const ORDER string = `order`
const PIXELS string = `pixels`
const FORMAT string = `format`
const FRAME string = `frame`
const TILEWIDTH string = `tileWidth`
const MAXWKTLEN string = `maxWktLen`

//nolint:funlen
func main() {
	app := cli.NewApp()
	app.Name = "hipsmeta"
	app.Usage = "Print HiPS tile metadata: file names, HEALPix resolution and sky corner quads"
	app.Version = versioninfo.Short()

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:     ORDER,
			Aliases:  []string{"o"},
			Usage:    "HEALPix order of the tiles",
			Required: true,
			EnvVars:  []string{strcase.ToScreamingSnake(ORDER)},
		},
		&cli.StringFlag{
			Name:     PIXELS,
			Aliases:  []string{"p"},
			Usage:    `HEALPix pixel indices of the tiles. JSON array of integers. E.g.: [448,449,450]`,
			Required: true,
			EnvVars:  []string{strcase.ToScreamingSnake(PIXELS)},
		},
		&cli.StringFlag{
			Name:     FORMAT,
			Aliases:  []string{"f"},
			Usage:    "Tile file format: fits, jpg or png",
			Value:    "fits",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(FORMAT)},
		},
		&cli.StringFlag{
			Name:     FRAME,
			Usage:    "Sky coordinate frame of the survey: icrs, galactic or ecliptic",
			Value:    string(wcs.Galactic),
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(FRAME)},
		},
		&cli.IntFlag{
			Name:     TILEWIDTH,
			Aliases:  []string{"w"},
			Usage:    "Tile width (and height) in pixels",
			Value:    512,
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(TILEWIDTH)},
		},
		&cli.UintFlag{
			Name:     MAXWKTLEN,
			Usage:    "Truncate the corners WKT to this many characters, 0 means no truncation",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(MAXWKTLEN)},
		},
	}

	app.Action = func(c *cli.Context) error {
		var ipixes []int
		err := json.Unmarshal([]byte(c.String(PIXELS)), &ipixes)
		if err != nil {
			return err
		}
		slices.Sort(ipixes)

		var format tiles.FileFormat
		if err := format.UnmarshalJSONFromMap(c.String(FORMAT)); err != nil {
			return err
		}
		var frame wcs.Frame
		if err := frame.UnmarshalJSONFromMap(c.String(FRAME)); err != nil {
			return err
		}

		for _, ipix := range ipixes {
			meta := tiles.Meta{
				Order:      c.Int(ORDER),
				Ipix:       ipix,
				FileFormat: format,
				Frame:      frame,
				TileWidth:  c.Int(TILEWIDTH),
			}
			cornersWKT, err := meta.CornersWKT(c.Uint(MAXWKTLEN))
			if err != nil {
				log.Fatalf("error computing corners for %s: %s", meta.Filename(), err)
			}
			fmt.Printf("%s nside=%d %s\n", meta.FullPath(), meta.Nside(), cornersWKT)
		}
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
