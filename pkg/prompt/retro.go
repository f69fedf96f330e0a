package prompt

// Retro1980s は写真を1980年代のフィルム写真風に変換する固定プロンプトです。
const Retro1980s = `Transform the uploaded photo into a photorealistic 1980s vintage photograph.

Preserve the original composition, camera angle, body pose, facial features, expressions, and proportions exactly as in the source image.

Style requirements:

- Era: authentic 1980s analog film photography

- Mood: nostalgic, warm, sentimental, playful, expressive, and character-driven

- Color: faded warm tones with a subtle yellow or sepia cast

- Texture: subtle film grain and natural aging noise

- Lighting: soft highlights, lower contrast, gently muted shadows

- Lens: mild softness and light blur, avoiding modern digital sharpness

- Paper aging: gentle vignette and slight edge darkening

Clothing transformation:

- Replace the original clothing with realistic 1980s-style vintage clothing

- Clothing should reflect common 1980s fashion aesthetics, including bold yet authentic retro colors, classic cuts, and period-appropriate fabrics

- Maintain the same clothing type and coverage (e.g., shirt remains a shirt, jacket remains a jacket)

- Ensure the clothing fits naturally on the body without altering body shape or proportions

- Clothing changes must look realistic and consistent with the lighting and scene

Retro accessories and hand-held props:

- Add one or two visually prominent, large, and iconic 1980s-era accessories or props that are clearly visible and eye-catching

- At least one prop should be held naturally in the person's hand or hands, and should be noticeably large or prominent in size

- Hand-held props may include diverse retro items such as: vintage cassette players (large boomboxes), cassette tapes, retro cameras (Polaroid cameras, film cameras), classic oversized headphones, analog walkman-style devices, old magazines or newspapers, vintage telephones, retro gaming devices (Game Boy, Atari controllers), vintage sunglasses cases, retro watches, vintage radios, old cameras with flash, vintage microphones, retro skateboards, vintage bicycles, or other recognizable everyday objects from the 1980s

- Props should be large enough to be clearly visible and prominent in the photo, making them a focal point

- Props should feel casually held, as if captured in a spontaneous moment, not posed or staged

- Ensure hand position, grip, and scale look natural and anatomically correct, but the props should be noticeably large or prominent

- Props must match the lighting, perspective, and realism of the scene

- Randomly add vintage 1980s-style sunglasses (aviator sunglasses, oversized frames, colorful frames, or classic retro designs) to the person's face when appropriate - these should be highly visible and characteristic of 1980s fashion

Constraints:

- Do NOT alter the person's identity, face shape, facial features, hairstyle, body shape, or posture

- Do NOT change the background layout or scene structure

- Do NOT distort hands, fingers, or object proportions

- No illustration, painting, anime, or stylized AI-art appearance

- No fantasy, exaggerated, or comedic elements

- No modern technology, logos, or contemporary branding

- No HDR, no ultra-sharp details, no modern color grading

The final result should look like a genuine photograph taken in the 1980s, featuring period-accurate clothing, iconic accessories, hand-held retro props, and naturally aged photo characteristics.`
