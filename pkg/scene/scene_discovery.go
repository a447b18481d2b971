package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/raylabs/go-pathtracer/pkg/core"
)

// FileGroup is the default discovery group for scene files without a "# Group:" header
const FileGroup = "Scene Files"

// SceneFileExtensions are the extensions scene discovery recognizes
var SceneFileExtensions = []string{".yaml", ".yml", ".json"}

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id" yaml:"id"`                   // Unique identifier
	Name        string `json:"name" yaml:"name"`               // Scene name
	DisplayName string `json:"displayName" yaml:"displayName"` // Display name
	Description string `json:"description" yaml:"description"` // Optional description
	Group       string `json:"group" yaml:"group"`             // Grouping category
	Type        string `json:"type" yaml:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath" yaml:"filePath"`       // Path to the scene file (file type only)
	Variant     string `json:"variant" yaml:"variant"`         // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name" yaml:"name"`
	Scenes []SceneInfo `json:"scenes" yaml:"scenes"`
}

// FindScenesDir returns the first existing candidate directory, or "" when none exists
func FindScenesDir(candidates ...string) string {
	if len(candidates) == 0 {
		candidates = []string{"scenes", "../scenes"}
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListSceneFiles scans dir for scene description files and returns their metadata.
// Files whose header cannot be read are skipped with a warning.
func ListSceneFiles(dir string, logger core.Logger) ([]SceneInfo, error) {
	if dir == "" {
		return []SceneInfo{}, nil
	}

	var files []string
	for _, ext := range SceneFileExtensions {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := []SceneInfo{}
	seen := make(map[string]string)
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			logger.Warningf("failed to parse metadata for %s: %v", filePath, err)
			continue
		}
		// Files are scanned in extension order, so "a.yaml" keeps "file:a"
		// and a later "a.json" is listed by its full file name
		if first, ok := seen[sceneInfo.ID]; ok {
			duplicate := sceneInfo.ID
			sceneInfo.ID = "file:" + filepath.Base(filePath)
			logger.Warningf("%s and %s share the scene id %s; listing %s as %s", first, filePath, duplicate, filePath, sceneInfo.ID)
		}
		seen[sceneInfo.ID] = filePath
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata extracts metadata from scene file header comments
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          "file:" + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       FileGroup,
		Type:        "file",
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// Metadata only lives in the leading comment block
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		switch {
		case strings.HasPrefix(content, "Scene:"):
			sceneInfo.Name = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
		case strings.HasPrefix(content, "Variant:"):
			sceneInfo.Variant = strings.TrimSpace(strings.TrimPrefix(content, "Variant:"))
		case strings.HasPrefix(content, "Description:"):
			sceneInfo.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		case strings.HasPrefix(content, "Group:"):
			sceneInfo.Group = strings.TrimSpace(strings.TrimPrefix(content, "Group:"))
		}
	}

	if sceneInfo.Variant != "" {
		sceneInfo.DisplayName = fmt.Sprintf("%s - %s", sceneInfo.Name, sceneInfo.Variant)
	} else {
		sceneInfo.DisplayName = sceneInfo.Name
	}

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns both built-in scenes and scene files in dir, grouped by category.
// The built-in group comes first, the rest alphabetically.
func ListAllScenes(dir string, logger core.Logger) ([]SceneGroup, error) {
	fileScenes, err := ListSceneFiles(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(ListBuiltinScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != BuiltinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	var groups []SceneGroup
	if builtInGroup, exists := groupMap[BuiltinGroup]; exists {
		groups = append(groups, SceneGroup{Name: BuiltinGroup, Scenes: builtInGroup})
	}
	for _, groupName := range groupNames {
		groups = append(groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return groups, nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-row" -> "Glass Row"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
	}

	return strings.Join(words, " ")
}
