package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/daeconv/collada"
	"github.com/binzume/daeconv/config"
	"github.com/binzume/daeconv/converter"
	"github.com/binzume/daeconv/geom"
	"github.com/binzume/daeconv/gltfutil"
	"github.com/binzume/daeconv/logger"
	"go.uber.org/zap"
)

func defaultOutputFile(input string) string {
	lower := strings.ToLower(input)
	for _, ext := range []string{".dae.gz", ".dae.zst", ".dae", ".zae"} {
		if strings.HasSuffix(lower, ext) {
			return input[0:len(input)-len(ext)] + ".glb"
		}
	}
	return input + ".glb"
}

func printInfo(imp *collada.Importer) {
	doc := imp.Document()
	fmt.Printf("COLLADA %s unit:%v up:%s\n", doc.Version, doc.Asset.Meter(), doc.Asset.UpAxis)
	for i := 0; i < imp.Mesh3DCount(); i++ {
		mesh, err := imp.Mesh3D(i)
		if err != nil {
			fmt.Printf("mesh %q: %v\n", imp.Mesh3DName(i), err)
			continue
		}
		for j, p := range mesh.Primitives {
			size := geom.NewBox3FromPoints(p.Positions).Size()
			fmt.Printf("mesh %q[%d] material:%d corners:%d vertices:%d triangles:%d size:(%.3f %.3f %.3f)\n",
				mesh.Name, j, p.Material, p.CornerCount, p.VertexCount(), len(p.Indices)/3, size.X, size.Y, size.Z)
		}
	}
	for i := 0; i < imp.MaterialCount(); i++ {
		fmt.Printf("material %d: %s\n", i, imp.MaterialName(i))
	}
	for i := 0; i < imp.Image2DCount(); i++ {
		fmt.Printf("image %d: %s\n", i, imp.Image2DPath(i))
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s input.dae [output.glb]\n", os.Args[0])
		flag.PrintDefaults()
	}
	confFile := flag.String("config", "", "config file (default: "+config.DefaultFile+" if exists)")
	scale := flag.Float64("scale", 0, "scale applied after the document unit. 0: config value")
	forceUnlit := flag.Bool("unlit", false, "unlit all materials")
	keepUpAxis := flag.Bool("keepupaxis", false, "do not convert up axis to Y_UP")
	skipBroken := flag.Bool("skipbroken", false, "skip meshes that can not be converted")
	texReCompress := flag.Bool("texturerecompress", false, "re-encode all textures")
	texLimit := flag.Int("texturelimit", 0, "texture resolution limit. 0: config value")
	texScale := flag.Float64("texturescale", 0, "texture scale. 0: config value")
	info := flag.Bool("info", false, "print document summary")
	logLevel := flag.String("loglevel", "", "debug, info, warn or error")
	logFile := flag.String("logfile", "", "log file")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return
	}

	conf, err := config.Load(*confFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *scale != 0 {
		conf.Convert.Scale = float32(*scale)
	}
	conf.Convert.ForceUnlit = conf.Convert.ForceUnlit || *forceUnlit
	conf.Convert.KeepUpAxis = conf.Convert.KeepUpAxis || *keepUpAxis
	conf.Convert.SkipBrokenMesh = conf.Convert.SkipBrokenMesh || *skipBroken
	conf.Texture.ReCompress = conf.Texture.ReCompress || *texReCompress
	if *texLimit != 0 {
		conf.Texture.ResolutionLimit = *texLimit
	}
	if *texScale != 0 {
		conf.Texture.Scale = float32(*texScale)
	}
	if *logLevel != "" {
		conf.Logging.Level = *logLevel
	}
	if *logFile != "" {
		conf.Logging.File = *logFile
	}

	log := logger.Init(conf.Logging.Level, conf.Logging.File)
	defer logger.Sync()

	input := flag.Arg(0)
	output := defaultOutputFile(input)
	if flag.NArg() > 1 {
		output = flag.Arg(1)
	}

	imp := collada.NewImporter(log)
	if err := imp.Open(input); err != nil {
		log.Fatal("open failed", zap.String("input", input), zap.Error(err))
	}
	defer imp.Close()

	if *info {
		printInfo(imp)
		return
	}

	conv := converter.NewColladaToGLTFConverter(&converter.ColladaToGLTFOption{
		Scale:                  conf.Convert.Scale,
		KeepUpAxis:             conf.Convert.KeepUpAxis,
		ForceUnlit:             conf.Convert.ForceUnlit,
		SkipBrokenMesh:         conf.Convert.SkipBrokenMesh,
		TextureReCompress:      conf.Texture.ReCompress,
		TextureBytesThreshold:  conf.Texture.BytesThreshold,
		TextureResolutionLimit: conf.Texture.ResolutionLimit,
		TextureScale:           conf.Texture.Scale,
		Logger:                 log,
	})
	doc, err := conv.Convert(imp)
	if err != nil {
		log.Fatal("convert failed", zap.String("input", input), zap.Error(err))
	}

	vertices, triangles := gltfutil.Stats(doc)
	size := gltfutil.Bounds(doc).Size()
	log.Info("out", zap.String("output", filepath.Clean(output)), zap.Int("vertices", vertices),
		zap.Int("triangles", triangles), zap.Float32s("size", []float32{size.X, size.Y, size.Z}))
	if err := gltfutil.Save(doc, output); err != nil {
		log.Fatal("save failed", zap.String("output", output), zap.Error(err))
	}
}
