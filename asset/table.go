package asset

import "slices"

// AssetsDir is where the rendering loader serves assets from.
const AssetsDir = "public/assets"

var requirements = []Requirement{
	{Kind: KindFile, Path: "public/assets/mall_kiosk.gltf", Label: "Mall kiosk model"},
	{Kind: KindFile, Path: "public/assets/mall_column.gltf", Label: "Mall column model"},
	{Kind: KindFile, Path: "public/assets/mall_banner.gltf", Label: "Mall banner structure"},
	{Kind: KindFile, Path: "public/assets/mall_banner.png", Label: "Mall banner texture"},
	{Kind: KindFile, Path: "public/assets/shopping_mall/scene.gltf", Label: "Shopping mall scene"},
	{Kind: KindFile, Path: "public/assets/mobility_scooter_animated/scene.gltf", Label: "Mobility scooter model"},
	{Kind: KindFile, Path: "public/assets/evil_old_lady/scene.gltf", Label: "Evil old lady rider"},
	{Kind: KindFile, Path: "public/assets/Character Base.gltf", Label: "Base NPC rig"},
	{
		Kind:  KindDirectory,
		Path:  "public/assets/Animated Men Pack-glb",
		Label: "Animated men NPC pack",
		Members: []string{
			"Man.gltf",
			"Man in Suit.gltf",
			"Man in Long Sleeves.gltf",
			"Man-fjHyMd5Wxw.gltf",
		},
	},
	{
		Kind:  KindDirectory,
		Path:  "public/assets/Ultimate Modular Women Pack-glb",
		Label: "Animated women NPC pack",
		Members: []string{
			"Animated Woman.gltf",
			"Animated Woman-nIItLV9nxS.gltf",
			"Adventurer.gltf",
			"Medieval.gltf",
			"Punk.gltf",
			"Sci Fi Character.gltf",
			"Soldier.gltf",
			"Suit.gltf",
			"Witch.gltf",
			"Worker.gltf",
		},
	},
}

// Requirements returns a copy of the known asset requirements in table order.
// Callers may modify the returned slice freely.
func Requirements() []Requirement {
	out := make([]Requirement, len(requirements))
	for i, req := range requirements {
		req.Members = slices.Clone(req.Members)
		out[i] = req
	}
	return out
}
