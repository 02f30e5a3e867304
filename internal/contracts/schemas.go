package contracts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"path"
	"strings"

	"recommendation-service/internal/contracts/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	err := fs.WalkDir(schemas.FS, "events", func(schemaPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(schemaPath, ".json") {
			return nil
		}

		data, err := schemas.FS.ReadFile(schemaPath)
		if err != nil {
			return fmt.Errorf("failed to read schema %s: %w", schemaPath, err)
		}

		if err := compiler.AddResource(schemaPath, strings.NewReader(string(data))); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", schemaPath, err)
		}
		schema, err := compiler.Compile(schemaPath)
		if err != nil {
			return fmt.Errorf("failed to compile schema %s: %w", schemaPath, err)
		}

		key := generateKeyFromPath(schemaPath)
		compiledSchemas[key] = schema
		log.Printf("Successfully loaded schema: %s", key)
		return nil
	})
	if err != nil {
		log.Fatalf("failed to load embedded event schemas: %v", err)
	}
}

// generateKeyFromPath выводит ключ "ТипСобытия/версия" из пути к файлу схемы.
// events/listing-upserted/v1.json -> ListingUpsertedEvent/1.0.0
func generateKeyFromPath(schemaPath string) string {
	dir, file := path.Split(schemaPath)

	parts := strings.Split(strings.Trim(dir, "/"), "/")
	eventName := parts[len(parts)-1]

	titleCaser := cases.Title(language.English)
	var eventType strings.Builder
	for _, word := range strings.Split(eventName, "-") {
		eventType.WriteString(titleCaser.String(word))
	}
	eventType.WriteString("Event")

	version := strings.TrimSuffix(file, ".json")
	version = strings.TrimPrefix(version, "v")
	// v1 -> 1.0.0, v1.2 -> 1.2.0
	for strings.Count(version, ".") < 2 {
		version += ".0"
	}

	return fmt.Sprintf("%s/%s", eventType.String(), version)
}

// ValidateEvent принимает тело сообщения и его метаданные и проверяет по схеме
func ValidateEvent(eventType, eventVersion string, body []byte) error {
	key := fmt.Sprintf("%s/%s", eventType, eventVersion)
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema for event '%s' version '%s' not found", eventType, eventVersion)
	}

	// Распарсить JSON в универсальный тип interface{}
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		// Если это невалидный JSON, валидация по схеме невозможна
		return fmt.Errorf("message body is not a valid JSON: %w", err)
	}

	// Валидировать уже распарсенные данные
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}

	return nil
}
